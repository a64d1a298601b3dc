package pptx

import (
	"bytes"

	"github.com/richardlehane/mscfb"
)

// OLE compound files share this signature; PowerPoint uses them for legacy
// .ppt files and for password-protected .pptx packages.
var cfbSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

func isCompoundFile(data []byte) bool {
	return bytes.HasPrefix(data, cfbSignature)
}

// describeCompoundFile names what an OLE container holds so the user gets a
// better hint than "not a zip file".
func describeCompoundFile(data []byte) string {
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return "corrupt OLE compound file"
	}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		switch entry.Name {
		case "EncryptedPackage":
			return "password-protected presentation (encrypted OLE container)"
		case "PowerPoint Document":
			return "legacy binary .ppt presentation, save it as .pptx first"
		}
	}
	return "OLE compound file, not a .pptx package"
}
