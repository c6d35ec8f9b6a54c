package upload

import "fmt"

// Descriptor is an immutable snapshot of one inbound file as handed over by
// the request runtime. It is passed by value and never modified by a Slot.
type Descriptor struct {
	// Name is the file name declared by the client. Untrusted.
	Name string `json:"name"`
	// MimeType is the content type declared by the client. Untrusted and not
	// sniffed; see Slot.DetectedMimetype for content-based detection.
	MimeType string `json:"mime_type"`
	// TempPath is where the runtime stored the received bytes.
	TempPath string `json:"temp_path"`
	// Size is the byte count reported by the runtime.
	Size int64 `json:"size"`
	// Code is the transport outcome; anything but CodeOK means no usable file.
	Code TransferCode `json:"code"`
}

// Descriptors maps form field keys to received files.
type Descriptors map[string]Descriptor

// TransferCode is the outcome of receiving a file from the client.
type TransferCode int

// Transfer codes follow the numbering used by common web runtimes;
// 5 is unassigned.
const (
	CodeOK        TransferCode = 0
	CodeIniSize   TransferCode = 1 // larger than the server-wide limit
	CodeFormSize  TransferCode = 2 // larger than the limit declared by the form
	CodePartial   TransferCode = 3
	CodeNoFile    TransferCode = 4
	CodeNoTmpDir  TransferCode = 6
	CodeCantWrite TransferCode = 7
	CodeExtension TransferCode = 8
)

var transferMessages = map[TransferCode]string{
	CodeIniSize:   "the uploaded file exceeds the server-configured maximum upload size",
	CodeFormSize:  "the uploaded file exceeds the maximum size declared by the form",
	CodePartial:   "the uploaded file was only partially uploaded",
	CodeNoFile:    "no file was uploaded",
	CodeNoTmpDir:  "missing a temporary folder",
	CodeCantWrite: "failed to write file to disk",
	CodeExtension: "a server extension stopped the file upload",
}

// Message returns the human-readable text for the code.
func (c TransferCode) Message() string {
	if c == CodeOK {
		return "the file was uploaded successfully"
	}
	if msg, ok := transferMessages[c]; ok {
		return msg
	}
	return fmt.Sprintf("unknown upload error (code %d)", int(c))
}

// OK reports whether the transfer succeeded.
func (c TransferCode) OK() bool {
	return c == CodeOK
}
