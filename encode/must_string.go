package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/logv/record"
)

func MustString(rec *record.Record, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(rec, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
