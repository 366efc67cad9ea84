package usage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

const unlimitedLiteral = "unlimited"

// generations left for an identity: a count, or unlimited.
// encodes as a JSON number or the string "unlimited"
type Remaining struct {
	Count     uint
	Unlimited bool
}

func Unlimited() Remaining {
	return Remaining{Unlimited: true}
}

func Count(n uint) Remaining {
	return Remaining{Count: n}
}

func (r Remaining) String() string {
	if r.Unlimited {
		return unlimitedLiteral
	}

	return strconv.FormatUint(uint64(r.Count), 10)
}

func (r Remaining) MarshalJSON() ([]byte, error) {
	if r.Unlimited {
		return json.Marshal(unlimitedLiteral)
	}

	return json.Marshal(r.Count)
}

func (r *Remaining) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte(`"`+unlimitedLiteral+`"`)) {
		*r = Unlimited()
		return nil
	}

	var n uint
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("remaining must be a non-negative number or %q: %w", unlimitedLiteral, err)
	}

	*r = Count(n)
	return nil
}
