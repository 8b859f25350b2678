package artwork

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	records := []Record{
		{ID: 1, Title: "Irises", Artist: "Vincent van Gogh", Date: "1890", Classification: "Paintings", ImageURL: "https://img/1.jpg"},
		{ID: 2, Title: "A \"quoted\" title, with comma", Artist: "Anonymous", Date: "Unknown", ImageURL: "https://img/2.jpg"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Title", "Artist", "Date", "Classification", "Image URL"}, rows[0])
	assert.Equal(t, []string{"1", "Irises", "Vincent van Gogh", "1890", "Paintings", "https://img/1.jpg"}, rows[1])
	assert.Equal(t, []string{"2", "A \"quoted\" title, with comma", "Anonymous", "Unknown", "", "https://img/2.jpg"}, rows[2])
}
