package fundsim

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "$1,105.17", M(1105.1709, "USD").String())
	assert.Contains(t, M(100000, "MXN").String(), "100,000.00")
}

func TestMoney_Grow(t *testing.T) {
	m := M(1000, "MXN")
	assert.True(t, M(1105.17, "MXN").Equal(m.Grow(0.1, 1, Continuous)))
	assert.True(t, M(1210, "MXN").Equal(m.Grow(0.1, 2, Annual)))
}

func TestProjectMoney(t *testing.T) {
	got, err := ProjectMoney(M(1000, "MXN"), 0.10, 3, Continuous)
	require.NoError(t, err)
	want := []Money{M(1000, "MXN"), M(1105.17, "MXN"), M(1221.4, "MXN"), M(1349.86, "MXN")}
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "year %d: got %v want %v", i, got[i], want[i])
	}

	_, err = ProjectMoney(M(0, "MXN"), 0.10, 3, Continuous)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseMoney(t *testing.T) {
	m, err := ParseMoney("150000.5", "MXN")
	require.NoError(t, err)
	assert.True(t, M(150000.5, "MXN").Equal(m))
	assert.False(t, m.LessThan(M(100000, "MXN")))
	assert.True(t, m.IsPositive())

	m, err = ParseMoney("0", "MXN")
	require.NoError(t, err)
	assert.False(t, m.IsPositive())

	_, err = ParseMoney("lots", "MXN")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMoney_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(M(1221.4027, "MXN"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"currency":"MXN","amount":"1221.4"}`, string(b))
}
