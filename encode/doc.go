// Package encode writes records for people and for other tools.
//
// # Usage
//
//	rec, err := sess.Parse(line)
//	...
//	// one line of text: time level logger: message key=value ... @ caller
//	err = encode.Encode(rec, os.Stdout)
//
//	// colored text
//	err = encode.Encode(rec, os.Stdout, encode.EncodeColors(encode.NewColors()))
//
//	// normalized JSON
//	err = encode.Encode(rec, os.Stdout, encode.EncodeJSON(true))
//
// # Related Packages
//
//   - github.com/signadot/logv/record - records and their fields
//   - github.com/signadot/logv/parse - parse lines into records
package encode
