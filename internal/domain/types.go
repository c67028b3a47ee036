package domain

import "time"

type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
}

type Car struct {
	ID        int64
	UserID    int64
	Make      string
	Model     string
	Year      string
	Plate     string
	Color     string
	CreatedAt time.Time
}

// DisplayName is the label used for the car throughout the UI and in AI
// prompts, e.g. "Ford Focus (2018)".
func (c *Car) DisplayName() string {
	name := c.Make + " " + c.Model
	if c.Year != "" {
		name += " (" + c.Year + ")"
	}
	return name
}

type ServiceRecord struct {
	ID          int64
	CarID       int64
	HappenedOn  time.Time
	ShopName    string
	Description string
	CostHUF     int64
	CreatedAt   time.Time
}
