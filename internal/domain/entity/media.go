package entity

import "encoding/json"

// PendingRemoteCheck is a locally stored media item that is waiting for
// confirmation that the server already holds a copy. Either identifier may
// be empty.
type PendingRemoteCheck struct {
	AUID  string `json:"auid"`
	BUID  string `json:"buid"`
	DayID int64  `json:"dayid"`
}

// ServerPhoto is one entry of the server's listing for a day.
// Only AUID and BUID take part in matching.
type ServerPhoto struct {
	FileID int64  `json:"fileid"`
	AUID   string `json:"auid"`
	BUID   string `json:"buid"`
	DayID  int64  `json:"dayid"`
}

// UnmarshalJSON decodes an entry leniently: a field of an unexpected type
// decodes to its zero value instead of failing the whole day listing.
func (p *ServerPhoto) UnmarshalJSON(data []byte) error {
	var raw struct {
		FileID json.RawMessage `json:"fileid"`
		AUID   json.RawMessage `json:"auid"`
		BUID   json.RawMessage `json:"buid"`
		DayID  json.RawMessage `json:"dayid"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = ServerPhoto{
		FileID: lenientInt(raw.FileID),
		AUID:   lenientString(raw.AUID),
		BUID:   lenientString(raw.BUID),
		DayID:  lenientInt(raw.DayID),
	}
	return nil
}

func lenientString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func lenientInt(raw json.RawMessage) int64 {
	var n json.Number
	if len(raw) == 0 || json.Unmarshal(raw, &n) != nil {
		return 0
	}
	i, err := n.Int64()
	if err != nil {
		return 0
	}
	return i
}

// DayMatch is the reconciliation outcome of a single day group
type DayMatch struct {
	DayID     int64    `json:"day_id"`
	Outcome   string   `json:"outcome"`
	MatchesA  []string `json:"matches_a"`
	MatchesB  []string `json:"matches_b"`
	Unmatched int      `json:"unmatched"`
}

// HasMatches reports whether any pending item of the day was found on the server.
func (d *DayMatch) HasMatches() bool {
	return len(d.MatchesA) > 0 || len(d.MatchesB) > 0
}
