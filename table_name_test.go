/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package unitype

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameRecordDecoded(t *testing.T) {
	testcases := []struct {
		record   NameRecord
		expected string
	}{
		{
			NameRecord{PlatformID: PlatformWindows, EncodingID: 1, Data: []byte{0, 'T', 0, 'e', 0, 's', 0, 't'}},
			"Test",
		},
		{
			NameRecord{PlatformID: PlatformUnicode, EncodingID: 3, Data: []byte{0, 'A', 0x00, 0xC5}},
			"AÅ",
		},
		{
			NameRecord{PlatformID: PlatformMacintosh, EncodingID: 0, Data: []byte{'C', 'a', 'f', 0x8E}},
			"Café",
		},
		{
			NameRecord{PlatformID: 2, EncodingID: 0, Data: []byte{'a', 0x01}},
			`a'\x01'`,
		},
	}
	for _, tcase := range testcases {
		assert.Equal(t, tcase.expected, tcase.record.Decoded())
	}
}

func TestNameTableGet(t *testing.T) {
	mac := &NameRecord{PlatformID: PlatformMacintosh, EncodingID: 0, NameID: NameIDFamily, Data: []byte("Mac")}
	win := &NameRecord{
		PlatformID: PlatformWindows, EncodingID: 1, LanguageID: 0x0409, NameID: NameIDFamily,
		Data: []byte{0, 'W', 0, 'i', 0, 'n'},
	}
	winFR := &NameRecord{
		PlatformID: PlatformWindows, EncodingID: 1, LanguageID: 0x040C, NameID: NameIDFamily,
		Data: []byte{0, 'F', 0, 'r'},
	}

	name := &NameTable{Records: []*NameRecord{mac, winFR, win}}
	s, ok := name.Get(NameIDFamily)
	require.True(t, ok)
	assert.Equal(t, "Win", s)

	name = &NameTable{Records: []*NameRecord{mac, winFR}}
	s, ok = name.Get(NameIDFamily)
	require.True(t, ok)
	assert.Equal(t, "Fr", s)

	name = &NameTable{Records: []*NameRecord{mac}}
	s, ok = name.Get(NameIDFamily)
	require.True(t, ok)
	assert.Equal(t, "Mac", s)

	_, ok = name.Get(NameIDFullName)
	assert.False(t, ok)
}

func TestNameTableSet(t *testing.T) {
	name := &NameTable{}
	require.NoError(t, name.Set(NameIDFullName, "Full"))
	require.NoError(t, name.Set(NameIDFamily, "Family"))
	require.Len(t, name.Records, 2)
	assert.Equal(t, NameIDFamily, name.Records[0].NameID)
	assert.Equal(t, NameIDFullName, name.Records[1].NameID)

	// Replaces the existing record.
	require.NoError(t, name.Set(NameIDFamily, "Other"))
	require.Len(t, name.Records, 2)
	s, ok := name.Get(NameIDFamily)
	require.True(t, ok)
	assert.Equal(t, "Other", s)
	assert.Equal(t, []byte{0, 'O', 0, 't', 0, 'h', 0, 'e', 0, 'r'}, name.Records[0].Data)
}

func TestNameTableMarshal(t *testing.T) {
	name := &NameTable{}
	require.NoError(t, name.Set(NameIDFamily, "Same"))
	require.NoError(t, name.Set(NameIDPostScriptName, "Same"))
	require.NoError(t, name.Set(NameIDFullName, "Other"))

	data, err := EncodeTable(name)
	require.NoError(t, err)
	// Identical strings share storage.
	assert.Len(t, data, 6+3*12+8+10)

	decoded := &NameTable{}
	require.NoError(t, decodeTableBytes(decoded, data))
	if diff := cmp.Diff(name, decoded); diff != "" {
		t.Errorf("decoded name table mismatch (-want +got):\n%s", diff)
	}
}

func TestNameTableFormat1(t *testing.T) {
	name := &NameTable{
		Format: 1,
		Records: []*NameRecord{
			{PlatformID: PlatformWindows, EncodingID: 1, LanguageID: 0x8000, NameID: NameIDFamily,
				Data: []byte{0, 'T', 0, 'a', 0, 'g'}},
		},
		LangTags: []*LangTagRecord{{Data: []byte{0, 'e', 0, 'n'}}},
	}
	data, err := EncodeTable(name)
	require.NoError(t, err)
	assert.Len(t, data, 6+12+2+4+6+4)

	decoded := &NameTable{}
	require.NoError(t, decodeTableBytes(decoded, data))
	if diff := cmp.Diff(name, decoded); diff != "" {
		t.Errorf("decoded name table mismatch (-want +got):\n%s", diff)
	}
}

func TestNameTableErrors(t *testing.T) {
	// String outside the table.
	data := []byte{
		0, 0, 0, 1, 0, 18,
		0, 3, 0, 1, 0x04, 0x09, 0, 1, 0, 10, 0, 0,
	}
	err := decodeTableBytes(&NameTable{}, data)
	assert.True(t, errors.Is(err, ErrInvalidTableData))

	// Unknown format.
	data = []byte{0, 2, 0, 0, 0, 6}
	err = decodeTableBytes(&NameTable{}, data)
	assert.True(t, errors.Is(err, ErrInvalidTableData))

	// Truncated record.
	data = []byte{0, 0, 0, 1, 0, 18, 0, 3}
	err = decodeTableBytes(&NameTable{}, data)
	assert.True(t, errors.Is(err, ErrUnexpectedEndOfData))
}
