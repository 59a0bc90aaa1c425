package failover

import (
	"fmt"

	"github.com/mark-bixler/aws-warm-pool-mixed-instance-types/failover/structs"
)

// TagNotFoundError is returned when a required tag key is absent from
// an event's tag set. Missing required tags are the only fatal input
// error in the system; there is no safe default for group identity.
type TagNotFoundError struct {
	Key string
}

func (e *TagNotFoundError) Error() string {
	return fmt.Sprintf("tag %q not found", e.Key)
}

// ResolveTag returns the value of the first tag with the given key.
// Matching is exact and the first occurrence wins.
func ResolveTag(tags []structs.Tag, key string) (string, error) {
	for _, tag := range tags {
		if tag.Key == key {
			return tag.Value, nil
		}
	}
	return "", &TagNotFoundError{Key: key}
}
