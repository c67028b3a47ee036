package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bhorvath/carwise/internal/advisor"
	"github.com/bhorvath/carwise/internal/domain"
	"github.com/bhorvath/carwise/internal/recommend"
)

// carRepository is the subset of store.CarStore that GarageService requires.
type carRepository interface {
	Create(ctx context.Context, userID int64, make, model, year, plate, color string) (*domain.Car, error)
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
	ListByUserID(ctx context.Context, userID int64) ([]*domain.Car, error)
	Update(ctx context.Context, id int64, make, model, year, plate, color string) error
	Delete(ctx context.Context, id int64) error
}

// recordRepository is the subset of store.RecordStore that GarageService requires.
type recordRepository interface {
	Create(ctx context.Context, carID int64, happenedOn time.Time, shopName, description string, costHUF int64) (*domain.ServiceRecord, error)
	GetByID(ctx context.Context, id int64) (*domain.ServiceRecord, error)
	ListByCarID(ctx context.Context, carID int64) ([]*domain.ServiceRecord, error)
	Delete(ctx context.Context, id int64) error
}

type GarageService struct {
	cars    carRepository
	records recordRepository
	ai      advisor.Advisor
	logger  *slog.Logger
}

func NewGarageService(cars carRepository, records recordRepository, ai advisor.Advisor, logger *slog.Logger) *GarageService {
	return &GarageService{cars: cars, records: records, ai: ai, logger: logger}
}

// ErrNotOwner rejects access to a car belonging to a different user.
var ErrNotOwner = fmt.Errorf("car does not belong to user")

func (s *GarageService) CreateCar(ctx context.Context, userID int64, make, model, year, plate, color string) (*domain.Car, error) {
	return s.cars.Create(ctx, userID, make, model, year, plate, color)
}

func (s *GarageService) ListCars(ctx context.Context, userID int64) ([]*domain.Car, error) {
	return s.cars.ListByUserID(ctx, userID)
}

// ownedCar loads the car and verifies ownership. Returns nil without error
// when the car does not exist.
func (s *GarageService) ownedCar(ctx context.Context, userID, carID int64) (*domain.Car, error) {
	car, err := s.cars.GetByID(ctx, carID)
	if err != nil {
		return nil, fmt.Errorf("failed to get car: %w", err)
	}
	if car == nil {
		return nil, nil
	}
	if car.UserID != userID {
		return nil, ErrNotOwner
	}
	return car, nil
}

func (s *GarageService) DeleteCar(ctx context.Context, userID, carID int64) error {
	car, err := s.ownedCar(ctx, userID, carID)
	if err != nil {
		return err
	}
	if car == nil {
		return fmt.Errorf("car not found")
	}
	return s.cars.Delete(ctx, carID)
}

// CarDetail bundles a car with its service history for rendering.
type CarDetail struct {
	*domain.Car
	Records   []*domain.ServiceRecord
	TotalCost int64
}

func (s *GarageService) GetCarDetail(ctx context.Context, userID, carID int64) (*CarDetail, error) {
	car, err := s.ownedCar(ctx, userID, carID)
	if err != nil || car == nil {
		return nil, err
	}

	records, err := s.records.ListByCarID(ctx, carID)
	if err != nil {
		return nil, fmt.Errorf("failed to list service records: %w", err)
	}

	detail := &CarDetail{Car: car, Records: records}
	for _, rec := range records {
		detail.TotalCost += rec.CostHUF
	}
	return detail, nil
}

func (s *GarageService) AddServiceRecord(ctx context.Context, userID, carID int64, happenedOn time.Time, shopName, description string, costHUF int64) (*domain.ServiceRecord, error) {
	car, err := s.ownedCar(ctx, userID, carID)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, fmt.Errorf("car not found")
	}
	return s.records.Create(ctx, carID, happenedOn, shopName, description, costHUF)
}

func (s *GarageService) DeleteServiceRecord(ctx context.Context, userID, recordID int64) error {
	rec, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return fmt.Errorf("failed to get service record: %w", err)
	}
	if rec == nil {
		return fmt.Errorf("service record not found")
	}
	if _, err := s.ownedCar(ctx, userID, rec.CarID); err != nil {
		return err
	}
	return s.records.Delete(ctx, recordID)
}

// FindMechanics asks the advisor and decodes its answer into cards. A reply
// that decodes to no cards is not an error; the caller falls back to the raw
// text in the returned result.
func (s *GarageService) FindMechanics(ctx context.Context, query advisor.MechanicQuery) ([]recommend.ViewModel, *advisor.MechanicResult, error) {
	s.logger.Info("mechanic search started", "radius_km", query.RadiusKm)

	result, err := s.ai.FindMechanics(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find mechanics: %w", err)
	}

	cards := recommend.Render(result.RawText)
	s.logger.Info("mechanic search complete", "cards", len(cards), "verified_shops", len(result.Shops))
	return cards, result, nil
}

// FindMechanicsStream streams decoded cards as the advisor produces them,
// when the configured backend supports streaming.
func (s *GarageService) FindMechanicsStream(ctx context.Context, query advisor.MechanicQuery) (<-chan advisor.StreamEvent, error) {
	sa, ok := s.ai.(advisor.StreamAdvisor)
	if !ok {
		return nil, fmt.Errorf("advisor does not support streaming")
	}

	s.logger.Info("mechanic stream search started", "radius_km", query.RadiusKm)
	return sa.FindMechanicsStream(ctx, query)
}

// AnalyzeQuote enriches the request with the selected car's details before
// asking the advisor.
func (s *GarageService) AnalyzeQuote(ctx context.Context, userID, carID int64, req advisor.QuoteRequest) (*advisor.QuoteAnalysis, error) {
	if carID != 0 {
		car, err := s.ownedCar(ctx, userID, carID)
		if err != nil {
			return nil, err
		}
		if car != nil {
			req.CarDetails = car.DisplayName()
		}
	}

	s.logger.Info("quote analysis started", "has_photo", req.Photo != nil)
	return s.ai.AnalyzeQuote(ctx, req)
}

func (s *GarageService) Diagnose(ctx context.Context, req advisor.DiagnosisRequest) (*advisor.Diagnosis, error) {
	s.logger.Info("diagnosis started", "has_photo", req.Photo != nil)
	return s.ai.Diagnose(ctx, req)
}

func (s *GarageService) AnalyzeAd(ctx context.Context, adText string) (*advisor.AdAnalysis, error) {
	s.logger.Info("ad analysis started", "chars", len(adText))
	return s.ai.AnalyzeAd(ctx, adText)
}

func (s *GarageService) PredictCosts(ctx context.Context, userID, carID int64, mileage string) (*advisor.CostForecast, error) {
	car, err := s.ownedCar(ctx, userID, carID)
	if err != nil {
		return nil, err
	}
	if car == nil {
		return nil, fmt.Errorf("car not found")
	}

	s.logger.Info("cost forecast started", "car_id", carID)
	return s.ai.PredictCosts(ctx, car.DisplayName(), mileage)
}
