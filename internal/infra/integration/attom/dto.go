package attom

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type expandedProfileResponse struct {
	Property []property `json:"property"`
}

type property struct {
	Address struct {
		OneLine     string `json:"oneLine"`
		Line1       string `json:"line1"`
		Locality    string `json:"locality"`
		CountrySubd string `json:"countrySubd"`
		Postal1     string `json:"postal1"`
	} `json:"address"`
	Assessment struct {
		Market struct {
			MktTotalValue number `json:"mktTotalValue"`
		} `json:"market"`
		Mortgage struct {
			Amount struct {
				FirstConcurrent number `json:"firstConcurrent"`
			} `json:"amount"`
		} `json:"mortgage"`
		Owner struct {
			Owner1 struct {
				First string `json:"first"`
				Last  string `json:"last"`
			} `json:"owner1"`
		} `json:"owner"`
	} `json:"assessment"`
	Sale struct {
		SaleTransDate string `json:"saleTransDate"`
	} `json:"sale"`
}

// number accepts a JSON number, a numeric string or null. Anything that does
// not parse counts as zero.
type number float64

func (n *number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*n = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*n = 0
			return nil
		}
		*n = number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = number(f)
	return nil
}
