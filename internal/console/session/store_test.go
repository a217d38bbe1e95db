package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userdeck/userdeck/internal/logging"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	return NewStore(path, 24*time.Hour, logging.NewDiscardLogger())
}

func TestSetToken_GetToken(t *testing.T) {
	s := newStore(t)
	assert.Empty(t, s.Token())

	require.NoError(t, s.SetToken("tok-123"))
	assert.Equal(t, "tok-123", s.Token())
}

func TestSetToken_RejectsEmpty(t *testing.T) {
	s := newStore(t)
	assert.Error(t, s.SetToken(""))
}

func TestClear(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SetToken("tok-123"))
	require.NoError(t, s.Clear())
	assert.Empty(t, s.Token())

	_, err := os.Stat(s.path)
	assert.True(t, os.IsNotExist(err))
}

func TestClear_NoFileIsFine(t *testing.T) {
	s := newStore(t)
	assert.NoError(t, s.Clear())
}

func TestPersistence_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	log := logging.NewDiscardLogger()

	first := NewStore(path, 24*time.Hour, log)
	require.NoError(t, first.SetToken("tok-123"))

	second := NewStore(path, 24*time.Hour, log)
	assert.Equal(t, "tok-123", second.Token())
}

func TestExpiry_OldCredentialTreatedAsAbsent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SetToken("tok-123"))

	s.now = func() time.Time { return time.Now().Add(25 * time.Hour) }
	assert.Empty(t, s.Token())
}

func TestExpiry_WithinLifetime(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SetToken("tok-123"))

	s.now = func() time.Time { return time.Now().Add(23 * time.Hour) }
	assert.Equal(t, "tok-123", s.Token())
}

func TestCorruptFile_StartsUnauthenticated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := NewStore(path, 24*time.Hour, logging.NewDiscardLogger())
	assert.Empty(t, s.Token())
}

func TestSubscribe_NotifiesOnFlips(t *testing.T) {
	s := newStore(t)

	var got []bool
	unsubscribe := s.Subscribe(func(authenticated bool) { got = append(got, authenticated) })

	require.NoError(t, s.SetToken("tok-123"))
	require.NoError(t, s.Clear())
	assert.Equal(t, []bool{true, false}, got)

	unsubscribe()
	require.NoError(t, s.SetToken("tok-456"))
	assert.Len(t, got, 2)
}

func TestFilePermissions(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SetToken("tok-123"))

	info, err := os.Stat(s.path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
