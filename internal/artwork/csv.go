package artwork

import (
	"encoding/csv"
	"io"
	"strconv"
)

// csvHeader is the export layout: one row per retained record.
var csvHeader = []string{"ID", "Title", "Artist", "Date", "Classification", "Image URL"}

// WriteCSV writes the records as a CSV document.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.ID),
			r.Title,
			r.Artist,
			r.Date,
			r.Classification,
			r.ImageURL,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
