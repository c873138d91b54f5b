package domain

// Reporter is the civilian (or customer) who reported a service request.
// Phone is the only mandatory contact detail; it is also the key used by
// notification campaigns (see ReportingRepository.GetPhones).
type Reporter struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Account string `json:"account,omitempty"`
}
