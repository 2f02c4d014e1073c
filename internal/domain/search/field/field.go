package field

// Field tags the entity attribute that produced a match.
type Field string

// Field constants in evaluation order.
const (
	Primary   Field = "primary"
	Secondary Field = "secondary"
	Slug      Field = "slug"
)

// IsValid checks if the field is one of the supported tags.
func (f Field) IsValid() bool {
	return f == Primary || f == Secondary || f == Slug
}
