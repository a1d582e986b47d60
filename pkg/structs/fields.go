package structs

import (
	"fmt"

	"github.com/oleiade/reflections"
)

// GetField returns the value of the provided obj field. obj can whether be a structure or pointer to structure.
func GetField(obj any, name string) any {
	v, err := reflections.GetField(obj, name)
	if err != nil {
		panic(err)
	}

	return v
}

// Text returns the textual representation of the provided obj fields, in the given order.
func Text(obj any, names ...string) []string {
	values := make([]string, 0, len(names))
	for _, name := range names {
		values = append(values, fmt.Sprint(GetField(obj, name)))
	}
	return values
}
