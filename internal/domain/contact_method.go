package domain

// ContactMethodName enumerates mechanisms a reporter may use to log an issue.
type ContactMethodName string

const (
	MethodPhoneCall ContactMethodName = "Call"
	MethodEmail     ContactMethodName = "Email"
	MethodSMS       ContactMethodName = "SMS"
	MethodUSSD      ContactMethodName = "USSD"
	MethodVisit     ContactMethodName = "Visit"
	MethodLetter    ContactMethodName = "Letter"
	MethodFax       ContactMethodName = "Fax"
	MethodMobileApp ContactMethodName = "Mobile"
	MethodWebsite   ContactMethodName = "Website"
)

// ContactMethods lists all acceptable contact method names.
var ContactMethods = []ContactMethodName{
	MethodPhoneCall, MethodEmail, MethodSMS,
	MethodUSSD, MethodVisit, MethodLetter, MethodFax,
	MethodMobileApp, MethodWebsite,
}

// ContactMethod records how a service request reached the system, e.g. a
// phone call received at a call center workspace.
type ContactMethod struct {
	Name      ContactMethodName `json:"name"`
	Workspace string            `json:"workspace,omitempty"`
}

// IsValidContactMethod reports whether name is one of the known methods.
func IsValidContactMethod(name ContactMethodName) bool {
	for _, m := range ContactMethods {
		if m == name {
			return true
		}
	}
	return false
}
