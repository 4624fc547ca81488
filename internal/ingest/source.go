package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"

	"github.com/ruralmapper/ruralmapper/pkg/validate"
)

// csvRow mirrors the accepted input columns. Everything decodes as text;
// numeric interpretation is the validator's job, not the parser's.
type csvRow struct {
	Latitude      string `csv:"latitude,omitempty"`
	Longitude     string `csv:"longitude,omitempty"`
	Provider      string `csv:"provider,omitempty"`
	Download      string `csv:"download,omitempty"`
	DownloadMbps  string `csv:"download_mbps,omitempty"`
	Upload        string `csv:"upload,omitempty"`
	UploadMbps    string `csv:"upload_mbps,omitempty"`
	Latency       string `csv:"latency,omitempty"`
	LatencyMs     string `csv:"latency_ms,omitempty"`
	Jitter        string `csv:"jitter,omitempty"`
	JitterMs      string `csv:"jitter_ms,omitempty"`
	PacketLoss    string `csv:"packet_loss,omitempty"`
	PacketLossPct string `csv:"packet_loss_pct,omitempty"`
	Timestamp     string `csv:"timestamp,omitempty"`
}

func (r csvRow) toRaw() validate.RawRecord {
	raw := validate.RawRecord{}
	for key, value := range map[string]string{
		"latitude":        r.Latitude,
		"longitude":       r.Longitude,
		"provider":        r.Provider,
		"download":        r.Download,
		"download_mbps":   r.DownloadMbps,
		"upload":          r.Upload,
		"upload_mbps":     r.UploadMbps,
		"latency":         r.Latency,
		"latency_ms":      r.LatencyMs,
		"jitter":          r.Jitter,
		"jitter_ms":       r.JitterMs,
		"packet_loss":     r.PacketLoss,
		"packet_loss_pct": r.PacketLossPct,
		"timestamp":       r.Timestamp,
	} {
		if value != "" {
			raw[key] = value
		}
	}
	return raw
}

// ReadCSV decodes a CSV stream with a header row into raw records. This
// is purely syntactic; no validation happens here.
func ReadCSV(r io.Reader) ([]validate.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	dec, err := csvutil.NewDecoder(reader)
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	var records []validate.RawRecord
	for {
		var row csvRow
		if err := dec.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("decoding csv row %d: %w", len(records)+1, err)
		}
		records = append(records, row.toRaw())
	}
	return records, nil
}

// ReadJSON decodes a JSON array of flat objects into raw records.
// Numbers keep their source text via json.Number so nothing is
// reformatted before validation.
func ReadJSON(r io.Reader) ([]validate.RawRecord, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding json records: %w", err)
	}

	records := make([]validate.RawRecord, 0, len(rows))
	for _, row := range rows {
		raw := validate.RawRecord{}
		for key, value := range row {
			switch v := value.(type) {
			case string:
				raw[key] = v
			case json.Number:
				raw[key] = v.String()
			case bool:
				raw[key] = fmt.Sprintf("%t", v)
			case nil:
				// treated as absent
			default:
				return nil, fmt.Errorf("field %q: nested values are not supported", key)
			}
		}
		records = append(records, raw)
	}
	return records, nil
}
