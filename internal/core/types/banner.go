package types

// Severity of a status banner
type Severity int

const (
	Ongoing Severity = iota
	Success
	Error
)

func (s Severity) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Success:
		return "success"
	default:
		return "error"
	}
}

// OperationKind labels what an ongoing banner is tracking
type OperationKind int

const (
	Delete OperationKind = iota
	Recycle
)

func (o OperationKind) String() string {
	if o == Recycle {
		return "recycle"
	}
	return "delete"
}

// OperationFor returns the banner operation kind for a delete mode
func OperationFor(mode DeleteMode) OperationKind {
	if mode == PermanentDelete {
		return Delete
	}
	return Recycle
}

// CreateKind is the kind of item the create operation produces
type CreateKind int

const (
	CreateFolder CreateKind = iota
	CreateTextDocument
	CreateBitmapImage
)

func (c CreateKind) String() string {
	switch c {
	case CreateTextDocument:
		return "text"
	case CreateBitmapImage:
		return "bitmap"
	default:
		return "folder"
	}
}

// ParseCreateKind accepts the names used on the command line
func ParseCreateKind(s string) (CreateKind, bool) {
	switch s {
	case "folder", "dir":
		return CreateFolder, true
	case "text", "txt":
		return CreateTextDocument, true
	case "bitmap", "bmp":
		return CreateBitmapImage, true
	}
	return 0, false
}
