package vcf_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwalczyk/gcal-birthdays/internal/vcf"
)

func TestReadEntries_FullDates(t *testing.T) {
	input := `BEGIN:VCARD
VERSION:4.0
FN:Anna Kowalska
BDAY:2000-05-20
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Jan Nowak
BDAY:19851102
END:VCARD`

	entries, err := vcf.ReadEntries(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, vcf.Entry{Name: "Anna Kowalska", Date: "2000-05-20"}, entries[0])
	assert.Equal(t, vcf.Entry{Name: "Jan Nowak", Date: "1985-11-02"}, entries[1])
}

func TestReadEntries_SkipsYearlessAndMissingBday(t *testing.T) {
	input := `BEGIN:VCARD
VERSION:4.0
FN:No Year
BDAY:--05-20
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:No Birthday
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Keeper
BDAY:1990-01-15
END:VCARD`

	entries, err := vcf.ReadEntries(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Keeper", entries[0].Name)
}

func TestReadEntries_StructuredNameFallback(t *testing.T) {
	input := `BEGIN:VCARD
VERSION:4.0
N:Kowalska;Anna;;;
BDAY:2000-05-20
END:VCARD`

	entries, err := vcf.ReadEntries(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].Name)
}

func TestReadEntries_EmptyStream(t *testing.T) {
	entries, err := vcf.ReadEntries(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
