package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCompanyName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme Corp", "acme"},
		{"ACME Corporation", "acme"},
		{"Acme, Inc.", "acme"},
		{"Globex LLC", "globex"},
		{"Initech Ltd", "initech"},
		{"  Stark   Industries  ", "stark industries"},
		{"Wayne-Enterprises Co", "wayne enterprises"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCompanyName(tt.in), "input %q", tt.in)
	}
}

func TestSimilarityNormalizedEqual(t *testing.T) {
	// Same company behind different legal dress.
	assert.Equal(t, 1.0, Similarity("Acme Corp", "ACME Corporation"))
}

func TestSimilaritySymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Acme Corp", "Acme Group"},
		{"Globex", "Globax"},
		{"Initech", "Intertrode"},
		{"", "Something"},
	}
	for _, p := range pairs {
		assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]), "pair %v", p)
	}
}

func TestSimilarityBounds(t *testing.T) {
	s := Similarity("Acme Corporation", "Completely Different Name")
	assert.GreaterOrEqual(t, s, 0.0)
	assert.Less(t, s, 0.85)
}

func TestValueSimilarity(t *testing.T) {
	assert.True(t, ValueSimilarity(10000, 9000, 0.2))
	assert.True(t, ValueSimilarity(9000, 10000, 0.2))
	assert.False(t, ValueSimilarity(10000, 7000, 0.2))
	assert.True(t, ValueSimilarity(0, 0, 0.2))
}

func TestTerritoriesOverlap(t *testing.T) {
	assert.True(t, TerritoriesOverlap("North America", "north america"))
	assert.True(t, TerritoriesOverlap("USA", "Canada"))
	assert.True(t, TerritoriesOverlap("EMEA", "Europe"))
	assert.False(t, TerritoriesOverlap("Europe", "APAC"))
	assert.False(t, TerritoriesOverlap("", "Europe"))
}
