package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScanRecord(t *testing.T) {
	// Arrange
	c := Candidate{
		Owner:  "octocat",
		Label:  "octocat/hello",
		File:   ".env",
		RawURL: "https://raw.githubusercontent.com/octocat/hello/main/.env",
	}
	secrets := ExtractedSecret{"API_KEY": "xT9!qLp2ZsndY83#"}

	// Act
	rec, err := NewScanRecord(c, secrets)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "octocat", rec.Owner)
	assert.Equal(t, "octocat/hello", rec.Label)
	assert.Equal(t, ".env", rec.File)
	assert.Equal(t, ComputeRecordID(c.Label, c.File, c.RawURL), rec.ID)
	assert.Equal(t, secrets, rec.Secrets)
}

func TestNewScanRecord_Empty(t *testing.T) {
	rec, err := NewScanRecord(Candidate{Label: "a/b", File: ".env"}, ExtractedSecret{})
	assert.ErrorIs(t, err, ErrNoSecrets)
	assert.Nil(t, rec)

	rec, err = NewScanRecord(Candidate{Label: "a/b", File: ".env"}, nil)
	assert.ErrorIs(t, err, ErrNoSecrets)
	assert.Nil(t, rec)
}

func TestNewScanRecord_CopiesSecrets(t *testing.T) {
	secrets := ExtractedSecret{"DB_TOKEN": "Zk8#mP2!qLrX9sT"}
	rec, err := NewScanRecord(Candidate{Label: "a/b", File: ".env"}, secrets)
	require.NoError(t, err)

	secrets["OTHER_KEY"] = "changed"

	assert.Len(t, rec.Secrets, 1, "record must not observe later changes to the input map")
}

func TestComputeRecordID(t *testing.T) {
	id1 := ComputeRecordID("a/b", ".env", "https://x/1")
	id2 := ComputeRecordID("a/b", ".env", "https://x/1")
	id3 := ComputeRecordID("a/b", ".env", "https://x/2")
	// Separator prevents ambiguous concatenations
	id4 := ComputeRecordID("a/b.", "env", "https://x/1")

	assert.Len(t, id1, 40)
	assert.Equal(t, id1, id2)
	assert.NotEqual(t, id1, id3)
	assert.NotEqual(t, id1, id4)
}

func TestExtractedSecret_Keys(t *testing.T) {
	e := ExtractedSecret{"Z_TOKEN": "1", "A_KEY": "2", "M_KEY": "3"}
	assert.Equal(t, []string{"A_KEY", "M_KEY", "Z_TOKEN"}, e.Keys())
	assert.Empty(t, ExtractedSecret{}.Keys())
}
