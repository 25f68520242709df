package eval

import "fmt"

// Inspect renders v the way the interpreter reports it to the user;
// unlike String(), strings are quoted.
func Inspect(v Value) string {
	switch v := v.(type) {
	case nil:
		return "<nil>"
	case String:
		return fmt.Sprintf("%q", string(v))
	}
	return v.String()
}
