package entity

// Property holds the ownership facts returned by the property-data provider.
// Phone and email are usually absent from that source.
type Property struct {
	Address       string
	OwnerName     string
	OwnerPhone    *string
	OwnerEmail    *string
	EquityPercent int
	YearsOwned    int
}
