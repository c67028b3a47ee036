package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardToggle(t *testing.T) {
	card := NewCard(ViewModel{ExpandedByDefault: false})
	assert.False(t, card.Expanded())

	card.Toggle(false)
	assert.True(t, card.Expanded())

	card.Toggle(false)
	assert.False(t, card.Expanded())
}

func TestCardStartsExpandedForTopChoice(t *testing.T) {
	card := NewCard(ViewModel{ExpandedByDefault: true})
	assert.True(t, card.Expanded())
}

func TestCardToggleSuppressedFromAction(t *testing.T) {
	card := NewCard(ViewModel{ExpandedByDefault: true})

	// Tapping "call" must not collapse the card.
	card.Toggle(true)
	assert.True(t, card.Expanded())

	card.Toggle(false)
	assert.False(t, card.Expanded())

	// And must not expand it either.
	card.Toggle(true)
	assert.False(t, card.Expanded())
}
