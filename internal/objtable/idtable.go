package objtable

// IDTable is one endpoint's local wire-id table: the injective mapping from
// ids used on that socket to the objects they identify, plus the allocator
// for the partition the proxy itself mints ids from on that endpoint.
//
// Which partition is "proxy-owned" depends on which party initiated the
// endpoint's connection: on the endpoint the proxy dialed itself (upstream,
// towards the real compositor) the proxy is the client, so it owns the
// client-allocated partition there; on the endpoint real clients dial
// (downstream) the proxy is the server, so it owns the server-allocated
// partition there.
type IDTable struct {
	Own   *Allocator
	binds map[uint32]Ref
}

// NewIDTable returns an IDTable whose proxy-owned partition is ownPartition.
func NewIDTable(ownPartition Partition) *IDTable {
	return &IDTable{
		Own:   NewAllocator(ownPartition),
		binds: make(map[uint32]Ref),
	}
}

// Lookup resolves a wire id bound on this endpoint to an object handle.
func (t *IDTable) Lookup(id uint32) (Ref, bool) {
	ref, ok := t.binds[id]
	return ref, ok
}

// Bind records that id identifies the object at ref on this endpoint. It
// overwrites any previous binding for id; callers are responsible for the
// injectivity and partitioning checks before calling Bind.
func (t *IDTable) Bind(id uint32, ref Ref) {
	t.binds[id] = ref
}

// Unbind removes id's binding, e.g. once a delete_id confirming its
// destruction has been observed.
func (t *IDTable) Unbind(id uint32) {
	delete(t.binds, id)
}

// Len reports the number of live bindings.
func (t *IDTable) Len() int {
	return len(t.binds)
}
