package frontmatter

import (
	"strings"

	"github.com/google/uuid"
	"github.com/inful/mdfp"
)

// Keys written into section frontmatter.
const (
	KeyTitle  = "title"
	KeyWeight = "weight"
	KeyUID    = "uid"
)

// SectionUID derives a stable identifier for a section file. The same TOC
// filename and section filename always give the same UID.
func SectionUID(tocFilename, filename string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mdsplit:"+tocFilename+"/"+filename)).String()
}

// SectionFields builds the frontmatter for one rendered section. The
// fingerprint covers title, weight and body; the uid is excluded so it can be
// recomputed independently.
func SectionFields(tocFilename, filename, title string, weight int, body string) (map[string]any, error) {
	hashed := map[string]any{
		KeyTitle:  title,
		KeyWeight: weight,
	}
	raw, err := Serialize(hashed)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		KeyTitle:              title,
		KeyWeight:             weight,
		KeyUID:                SectionUID(tocFilename, filename),
		mdfp.FingerprintField: mdfp.CalculateFingerprintFromParts(strings.TrimSuffix(string(raw), "\n"), body),
	}
	return fields, nil
}

// Fingerprint returns the fingerprint recorded in fields, if any.
func Fingerprint(fields map[string]any) (string, bool) {
	fp, ok := fields[mdfp.FingerprintField].(string)
	return fp, ok && fp != ""
}
