package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/campus-helpdesk/internal/domain"
)

const sampleArtifact = `{
  "classes": {
    "Library": {
      "log_prior": -1.6,
      "token_log_probs": {"book": -1.0, "borrow": -1.2, "fine": -1.5},
      "unseen_log_prob": -6.0
    },
    "Finance": {
      "log_prior": -1.6,
      "token_log_probs": {"fee": -1.0, "refund": -1.1, "fine": -2.0},
      "unseen_log_prob": -6.0
    }
  }
}`

func writeArtifact(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAndPredict(t *testing.T) {
	model, err := Load(writeArtifact(t, sampleArtifact))
	require.NoError(t, err)

	category, err := model.Predict("borrow book")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryLibrary, category)

	category, err = model.Predict("fee refund")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryFinance, category)
}

func TestPredictSharedTokenUsesWeights(t *testing.T) {
	model, err := Load(writeArtifact(t, sampleArtifact))
	require.NoError(t, err)

	// "fine" appears in both classes but weighs more for Library.
	category, err := model.Predict("fine")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryLibrary, category)
}

func TestPredictEmptyQuery(t *testing.T) {
	model, err := Load(writeArtifact(t, sampleArtifact))
	require.NoError(t, err)

	_, err = model.Predict("   ")
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadEmptyArtifact(t *testing.T) {
	_, err := Load(writeArtifact(t, `{"classes": {}}`))
	assert.Error(t, err)
}
