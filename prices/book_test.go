package prices

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBook_InsertionOrder(t *testing.T) {
	b := NewBook()
	b.Set("zed_project", "1350")
	b.Set("ahri_arcade", "1350")
	b.Set("zed_project", "1820")
	b.Set("lux_elementalist", "3250")

	want := []string{"zed_project", "ahri_arcade", "lux_elementalist"}
	if diff := cmp.Diff(want, b.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	price, _ := b.Get("zed_project")
	assert.Equal(t, "1820", price)
}

func TestBook_MarshalIndent(t *testing.T) {
	b := NewBook()
	b.Set("ahri_foxfire", "1350")
	b.Set("ahri_midnight", "Special")

	out, err := b.MarshalIndent("  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"ahri_foxfire\": \"1350\",\n  \"ahri_midnight\": \"Special\"\n}", string(out))
}

func TestBook_MarshalIndentEmpty(t *testing.T) {
	out, err := NewBook().MarshalIndent("  ")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))
}

func TestBook_EscapesNonASCII(t *testing.T) {
	b := NewBook()
	b.Set("a", "1350&nbsp;RP")
	b.Set("b", "é")
	b.Set("c", "😀")
	b.Set("d", "say \"hi\"")

	out, err := b.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"a":"1350&nbsp;RP","b":"\u00e9","c":"\ud83d\ude00","d":"say \"hi\""}`, string(out))

	var back map[string]string
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, "é", back["b"])
	assert.Equal(t, "😀", back["c"])
}

func TestBook_UnmarshalKeepsOrder(t *testing.T) {
	var b Book
	require.NoError(t, json.Unmarshal([]byte(`{"zed_project":"1350","ahri_arcade":"750","lux_dark":"Special"}`), &b))

	if diff := cmp.Diff([]string{"zed_project", "ahri_arcade", "lux_dark"}, b.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, b.Len())
}

func TestBook_UnmarshalRejectsNonString(t *testing.T) {
	var b Book
	assert.Error(t, json.Unmarshal([]byte(`{"a": 1}`), &b))
}

func TestBook_EachStops(t *testing.T) {
	b := NewBook()
	b.Set("a", "1")
	b.Set("b", "2")
	b.Set("c", "3")

	var seen []string
	b.Each(func(key, _ string) bool {
		seen = append(seen, key)
		return key != "b"
	})
	assert.Equal(t, []string{"a", "b"}, seen)
}
