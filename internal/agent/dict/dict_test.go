package dict

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redspider/medqa/internal/agent/model"
	errx "github.com/redspider/medqa/internal/core/error"
)

func TestLoad(t *testing.T) {
	d, err := Load("testdata")
	require.NoError(t, err)

	assert.Equal(t, 10, d.Len())
	assert.Equal(t, []model.EntityType{model.Disease, model.Symptom}, d.Types("发热"))
	assert.Equal(t, []model.EntityType{model.Drug}, d.Types("阿莫西林"))
	assert.Nil(t, d.Types("不存在"))
	assert.True(t, d.Contains(model.Food, "小米粥"))
	assert.False(t, d.Contains(model.Food, "感冒"))
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"disease.txt", "drug.txt", "food.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o600))
	}

	_, err := Load(dir)
	require.Error(t, err)
	assert.Equal(t, errx.KindConfig, errx.KindOf(err))
	assert.Contains(t, err.Error(), "symptom.txt")
}

func TestLoadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range Files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x\n"), 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "food.txt"), []byte("\n  \n"), 0o600))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Equal(t, errx.KindConfig, errx.KindOf(err))
	assert.Contains(t, err.Error(), "empty")
}

func TestNewSkipsBlankTerms(t *testing.T) {
	d := New(map[model.EntityType][]string{
		model.Disease: {" 感冒 ", ""},
	})
	assert.Equal(t, []string{"感冒"}, d.Terms())
}
