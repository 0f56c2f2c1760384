package pattern

// Built-in pattern names. Every name here is registered on Default at
// package load and resolvable through Get for the life of the process.
const (
	Email   = "EMAIL"
	PhoneUS = "PHONE_US"
	URL     = "URL"
	IPv4    = "IPV4"
	SSNUS   = "SSN_US"
	ZipUS   = "ZIP_US"
	DateISO = "DATE_ISO"
	Time24H = "TIME_24H"
	Digit   = "DIGIT"

	// Medical code systems.
	ICD10CM  = "ICD10_CM"
	ICD10Sub = "ICD10_SUB"
	ICD9     = "ICD9"
	ICD9VE   = "ICD9_VE"
	CPT      = "CPT"
	LOINC    = "LOINC"
	SNOMED   = "SNOMED"
	ATC      = "ATC"
	MRN      = "MRN"

	// Clinical-trial registry identifiers.
	NCTID     = "NCT_ID"
	ISRCTNID  = "ISRCTN_ID"
	EudraCTID = "EUDRACT_ID"
)

func init() {
	r := Default

	r.mustRegister(Email, `(?P<local>[A-Za-z0-9._%+\-]+)@(?P<domain>[A-Za-z0-9.\-]+\.[A-Za-z]{2,})`)
	r.mustRegister(PhoneUS, `(?:\+?1[-. ]?)?\(?(?P<area>\d{3})\)?[-. ]?\d{3}[-. ]?\d{4}`)
	r.mustRegister(URL, `https?://[^\s<>"']+`)
	r.mustRegister(IPv4, `(?:(?:25[0-5]|2[0-4]\d|1?\d?\d)\.){3}(?:25[0-5]|2[0-4]\d|1?\d?\d)`)
	r.mustRegister(SSNUS, `\d{3}-\d{2}-\d{4}`)
	r.mustRegister(ZipUS, `\d{5}(?:-\d{4})?`)
	r.mustRegister(DateISO, `(?P<year>\d{4})-(?P<month>\d{2})-(?P<day>\d{2})`)
	r.mustRegister(Time24H, `(?:[01]\d|2[0-3]):[0-5]\d(?::[0-5]\d)?`)
	r.mustRegister(Digit, `\d+`)

	// Code-system grammars mirror the shapes each system publishes:
	// ICD-10-CM "N17.9", ICD-10 alphanumeric subcodes "J09.X1",
	// legacy ICD-9 "250.00" and V/E codes, CPT with optional modifier,
	// LOINC "718-7", numeric SNOMED/RxNorm identifiers, ATC "A10BA02".
	r.mustRegister(ICD10CM, `\b[A-Z]\d{2}\.\d{1,4}\b`)
	r.mustRegister(ICD10Sub, `\b[A-Z]\d{2}\.[A-Z]\d{1,3}\b`)
	r.mustRegister(ICD9, `\b\d{3}\.\d{1,2}\b`)
	r.mustRegister(ICD9VE, `\b[VE]\d{3}\.\d{1,2}\b`)
	r.mustRegister(CPT, `\b9\d{4}(?:-\d{2})?\b`)
	r.mustRegister(LOINC, `\b\d{1,5}-\d\b`)
	r.mustRegister(SNOMED, `\b\d{6,18}\b`)
	r.mustRegister(ATC, `\b[A-Z]\d{2}[A-Z]{2}\d{2}\b`)
	r.mustRegister(MRN, `\bMRN[:#]?\s*(?P<id>\d{6,10})\b`, IgnoreCase)

	r.mustRegister(NCTID, `\bNCT\d{8}\b`)
	r.mustRegister(ISRCTNID, `\bISRCTN\d{6,8}\b`)
	r.mustRegister(EudraCTID, `\bEudraCT\s*\d{4}-\d{6}-\d{2}\b`, IgnoreCase)
}
