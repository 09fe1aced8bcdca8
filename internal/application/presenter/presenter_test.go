package presenter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hapkiduki/boxopt/internal/domain/optimizer"
	"github.com/hapkiduki/boxopt/internal/domain/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func specFor(t *testing.T, v float64) valueobject.BoxSpec {
	t.Helper()
	spec, err := optimizer.Compute(v)
	require.NoError(t, err)
	return spec
}

func TestNew_Precision(t *testing.T) {
	_, err := New(-1)
	assert.ErrorIs(t, err, ErrInvalidPrecision)
	_, err = New(MaxPrecision + 1)
	assert.ErrorIs(t, err, ErrInvalidPrecision)

	p, err := New(2)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Precision())
	assert.Equal(t, DefaultPrecision, Default().Precision())
}

func TestPresenter_Number(t *testing.T) {
	p := Default()

	assert.Equal(t, "1.5874", p.Number(1.5874010519681994))
	assert.Equal(t, "2.0000", p.Number(2))
	assert.Equal(t, "12,345.6789", p.Number(12345.6789))
	assert.Equal(t, "1000000000000000.0000", p.Number(1e15))

	p0, err := New(0)
	require.NoError(t, err)
	assert.Equal(t, "1,235", p0.Number(1234.6))
}

func TestPresenter_Summary(t *testing.T) {
	s := Default().Summary(specFor(t, 2))

	require.Len(t, s.Lines, 5)
	texts := make([]string, 0, len(s.Lines))
	for _, l := range s.Lines {
		texts = append(texts, l.Text)
	}
	assert.Equal(t, []string{"1.5874", "1.5874", "0.7937", "7.5595", "2.0000"}, texts)
	assert.Equal(t, "x", s.Lines[0].Symbol)
	assert.Equal(t, "u²", s.Lines[3].Unit)
	assert.Equal(t, "u³", s.Lines[4].Unit)
	assert.NotEmpty(t, s.Note)
}

func TestPresenter_Derivation(t *testing.T) {
	steps := Default().Derivation(specFor(t, 2))

	require.Len(t, steps, DerivationSteps)
	for i, s := range steps {
		assert.Equal(t, i+1, s.Number)
		assert.NotEmpty(t, s.Title)
		assert.NotEmpty(t, s.Lines)
	}

	assert.Contains(t, steps[0].Lines[0], "V = 2 u³")
	assert.Contains(t, steps[6].Lines, "x = ∛(2V) = 1.5874")
	assert.Equal(t, []string{"y = x = 1.5874"}, steps[7].Lines)
	assert.Equal(t, []string{"h = V/(x·y) = V/2.5198 = 0.7937"}, steps[8].Lines)
	assert.Equal(t, []string{"A = xy + 2xh + 2yh = 7.5595 u²"}, steps[9].Lines)
}

func TestPresenter_WriteSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().WriteSummary(&buf, specFor(t, 1)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Optimal dimensions:"))
	assert.Contains(t, out, "• Width (x) = 1.2599 u")
	assert.Contains(t, out, "• Height (h) = 0.6300 u")
	assert.Contains(t, out, "• Minimal area = 4.7622 u²")
	assert.Contains(t, out, "• Volume = 1.0000 u³")
}

func TestPresenter_WriteDerivation(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().WriteDerivation(&buf, specFor(t, 2)))

	out := buf.String()
	assert.Contains(t, out, "1. Problem statement:")
	assert.Contains(t, out, "10. Minimal area:")
	assert.Contains(t, out, "   ∂A/∂x = y - 2V/x² = 0")
}

func TestPresenter_WriteFaces(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().WriteFaces(&buf, specFor(t, 2)))

	out := buf.String()
	assert.Contains(t, out, "5 faces")
	for _, name := range []string{"base", "front", "right", "back", "left"} {
		assert.Contains(t, out, name)
	}
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 6)
}
