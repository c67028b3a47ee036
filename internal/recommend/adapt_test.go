package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		kind LinkKind
		want string
	}{
		{"empty", "", LinkWeb, ""},
		{"whitespace only", "   ", LinkWeb, ""},
		{"bare domain", "example.com", LinkWeb, "https://example.com"},
		{"https kept verbatim", "https://example.com", LinkWeb, "https://example.com"},
		{"http kept verbatim", "http://example.com", LinkWeb, "http://example.com"},
		{"map with url", "https://maps.google.com/x", LinkMap, "https://maps.google.com/x"},
		{"map with www", "www.maps.google.com/x", LinkMap, "https://www.maps.google.com/x"},
		{
			name: "map with place text becomes search url",
			raw:  "Main Street 5, Budapest",
			kind: LinkMap,
			want: "https://www.google.com/maps/search/?api=1&query=Main+Street+5%2C+Budapest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeURL(tt.raw, tt.kind))
		})
	}
}

func TestTelURL(t *testing.T) {
	assert.Equal(t, "tel:+3612345678", TelURL("+36 1 234 5678"))
	assert.Equal(t, "tel:555-1234", TelURL("555-1234"))
}

func TestAdaptActions(t *testing.T) {
	tests := []struct {
		name      string
		fields    FieldSet
		wantKinds []ActionKind
	}{
		{"no fields", FieldSet{}, nil},
		{"phone only", FieldSet{Phone: "555"}, []ActionKind{ActionCall}},
		{"website and address only", FieldSet{Address: "A", Website: "w.hu"}, []ActionKind{ActionWebsite}},
		{"everything", FieldSet{Address: "A", Phone: "P", Website: "W", MapLink: "M"}, []ActionKind{ActionCall, ActionMap, ActionWebsite}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vm := Adapt(Item{Fields: tt.fields})
			kinds := make([]ActionKind, 0, len(vm.Actions))
			for _, a := range vm.Actions {
				kinds = append(kinds, a.Kind)
			}
			if tt.wantKinds == nil {
				assert.Empty(t, kinds)
			} else {
				assert.Equal(t, tt.wantKinds, kinds)
			}
		})
	}
}

func TestTopChoiceDerivation(t *testing.T) {
	doc := "* A\n* B\n* C\n"
	vms := Render(doc)
	require.Len(t, vms, 3)

	assert.True(t, vms[0].TopChoice)
	assert.True(t, vms[0].ExpandedByDefault)
	for _, vm := range vms[1:] {
		assert.False(t, vm.TopChoice)
		assert.False(t, vm.ExpandedByDefault)
	}
}

func TestRenderScenario(t *testing.T) {
	// Model output as it actually arrives: quote lines flush with the left
	// margin, not indented under the bullet.
	doc := "* **Joe's Garage**\n" +
		"> Great reviews, fair prices.\n" +
		">\n" +
		"> 📍 123 Main St\n" +
		"> 📞 555-1234\n" +
		"> 🗺️ MapCo"

	vms := Render(doc)
	require.Len(t, vms, 1)

	vm := vms[0]
	assert.Equal(t, "Joe's Garage", vm.Title)
	assert.Equal(t, "Great reviews, fair prices.", vm.Rationale)
	assert.Equal(t, "123 Main St", vm.Address)
	assert.True(t, vm.TopChoice)
	assert.True(t, vm.ExpandedByDefault)

	require.Len(t, vm.Actions, 2)
	assert.Equal(t, ActionCall, vm.Actions[0].Kind)
	assert.Equal(t, "tel:555-1234", vm.Actions[0].Target)
	assert.Equal(t, ActionMap, vm.Actions[1].Kind)
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=MapCo", vm.Actions[1].Target)
}

func TestRenderNoFieldsBlock(t *testing.T) {
	vms := Render("* Title Only Shop\n")
	require.Len(t, vms, 1)

	vm := vms[0]
	assert.Equal(t, "Title Only Shop", vm.Title)
	assert.Empty(t, vm.Rationale)
	assert.Empty(t, vm.Actions)
}

func TestRenderIdempotent(t *testing.T) {
	first := Render(sampleDoc)
	second := Render(sampleDoc)
	assert.Equal(t, first, second)
}
