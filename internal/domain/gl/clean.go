package gl

import (
	"fmt"
	"strings"
)

// missingNumberTag is the placeholder prefix for GL lines that arrive
// without a transaction number. Each missing value gets a unique tag in
// encounter order so unrelated missing rows never collide during matching.
const missingNumberTag = "Missing Tr No."

// notAvailable fills free-text fields the source left blank.
const notAvailable = "NA"

// Clean normalizes raw GL records for classification and matching:
// missing transaction numbers are replaced with unique placeholder tags,
// leading zeros are stripped from transaction numbers, and blank date and
// party fields are filled with "NA". The input slice is not modified.
func Clean(records []Record) []Record {
	out := make([]Record, len(records))
	counter := 0
	for i, r := range records {
		if strings.TrimSpace(r.TransactionNumber) == "" {
			counter++
			r.TransactionNumber = fmt.Sprintf("%s%d", missingNumberTag, counter)
		} else {
			stripped := strings.TrimLeft(r.TransactionNumber, "0")
			if stripped == "" {
				// All-zero numbers keep a single zero so the record stays
				// distinguishable from a missing number.
				stripped = "0"
			}
			r.TransactionNumber = stripped
		}
		if r.TransactionDate == "" {
			r.TransactionDate = notAvailable
		}
		if r.PartyNumber == "" {
			r.PartyNumber = notAvailable
		}
		if r.PartyName == "" {
			r.PartyName = notAvailable
		}
		out[i] = r
	}
	return out
}
