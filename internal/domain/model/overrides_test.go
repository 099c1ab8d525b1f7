package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverrides_JSONRoundTrip_PreservesOrder(t *testing.T) {
	in := Overrides{
		{Name: "zeta", Value: "1"},
		{Name: "alpha", Value: "2"},
		{Name: "mid", Value: "3"},
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"zeta":"1","alpha":"2","mid":"3"}`, string(data))

	var out Overrides
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestOverrides_UnmarshalJSON_NonStringValues(t *testing.T) {
	var out Overrides
	require.NoError(t, json.Unmarshal([]byte(`{"year":2024,"enabled":true,"region":"EU"}`), &out))

	assert.Equal(t, Overrides{
		{Name: "year", Value: "2024"},
		{Name: "enabled", Value: "true"},
		{Name: "region", Value: "EU"},
	}, out)
}

func TestOverrides_UnmarshalJSON_RejectsNonObject(t *testing.T) {
	var out Overrides
	err := json.Unmarshal([]byte(`["a","b"]`), &out)
	assert.Error(t, err)
}

func TestOverrides_Label(t *testing.T) {
	o := Overrides{
		{Name: "region", Value: "EU"},
		{Name: "year", Value: "2024"},
	}
	assert.Equal(t, "region_EUyear_2024", o.Label())
	assert.Empty(t, Overrides{}.Label())
}

func TestOverrides_Fingerprint_OrderInsensitive(t *testing.T) {
	a := Overrides{{Name: "region", Value: "EU"}, {Name: "year", Value: "2024"}}
	b := Overrides{{Name: "year", Value: "2024"}, {Name: "region", Value: "EU"}}
	c := Overrides{{Name: "region", Value: "US"}, {Name: "year", Value: "2024"}}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(a[:1]))
}

func TestOverrides_Get(t *testing.T) {
	o := Overrides{{Name: "region", Value: "EU"}}

	v, ok := o.Get("region")
	assert.True(t, ok)
	assert.Equal(t, "EU", v)

	_, ok = o.Get("missing")
	assert.False(t, ok)
}

func TestOverrides_Clone_Independent(t *testing.T) {
	in := Overrides{{Name: "region", Value: "EU"}}
	out := in.Clone()
	out[0].Value = "US"

	assert.Equal(t, "EU", in[0].Value)
	assert.Nil(t, Overrides(nil).Clone())
}
