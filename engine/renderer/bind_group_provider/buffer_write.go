package bind_group_provider

// BufferWrite is one staged upload: Data replaces the bytes of a provider's binding starting
// at Offset. Writes from one Flush must be applied in order.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}
