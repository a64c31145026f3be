package email

const (
	subjectAssignmentFmt   = "Nuevo caso asignado: %s"
	subjectLeadCapturedFmt = "Nuevo lead capturado: %s"
)
