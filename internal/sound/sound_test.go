package sound

import (
	"reflect"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rings runs cmd and every command it fans out to, returning the raw output
// it asks the program to write.
func rings(t *testing.T, cmd tea.Cmd) []string {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if raw, ok := msg.(tea.RawMsg); ok {
		s, ok := raw.Msg.(string)
		require.True(t, ok, "raw output should be a string, got %T", raw.Msg)
		return []string{s}
	}
	v := reflect.ValueOf(msg)
	require.Equal(t, reflect.Slice, v.Kind(), "unexpected message %T", msg)
	var out []string
	for i := range v.Len() {
		sub, ok := v.Index(i).Interface().(tea.Cmd)
		require.True(t, ok)
		out = append(out, rings(t, sub)...)
	}
	return out
}

func TestBellPlayerWrongRingsOnce(t *testing.T) {
	p := NewBellPlayer()
	assert.Equal(t, []string{bell}, rings(t, p.Play(false)))
}

func TestBellPlayerCorrectRingsTwice(t *testing.T) {
	p := &BellPlayer{gap: 0}
	assert.Equal(t, []string{bell, bell}, rings(t, p.Play(true)))
}

func TestNew(t *testing.T) {
	assert.IsType(t, Nop{}, New(false))
	assert.IsType(t, &BellPlayer{}, New(true))
	assert.Nil(t, Nop{}.Play(true))
	assert.Nil(t, New(false).Play(false))
}
