package models

// SensitiveMeta is patient-identifying metadata attached to a video or PDF.
// It must be verified by a human before annotation work proceeds.
type SensitiveMeta struct {
	ID               int64  `json:"id"`
	FileID           int64  `json:"file_id"`
	FileType         string `json:"file_type,omitempty"` // video|pdf
	PatientFirstName string `json:"patient_first_name"`
	PatientLastName  string `json:"patient_last_name"`
	PatientDOB       string `json:"patient_dob"`
	ExaminationDate  string `json:"examination_date"`
	CasenumberHash   string `json:"casenumber_hash,omitempty"`
	Verified         bool   `json:"state_verified"`
}

// RequiredFieldsPresent reports whether the fields verification requires are
// all filled in.
func (m *SensitiveMeta) RequiredFieldsPresent() bool {
	return m.PatientFirstName != "" &&
		m.PatientLastName != "" &&
		m.PatientDOB != "" &&
		m.ExaminationDate != ""
}
