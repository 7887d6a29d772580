package audioconvert

// CodecInfo describes a registered container codec and its capability
// limits.
type CodecInfo struct {
	// Name is the human-readable codec name.
	Name string

	// Container is the identifier used in AudioFormat.Container.
	Container string

	// Extensions lists associated file extensions without the leading dot.
	Extensions []string

	// MaxSampleRate and MaxChannels are the codec's upper limits.
	MaxSampleRate int
	MaxChannels   int

	// BitDepths lists the supported bit depths.
	BitDepths []int

	// Lossless reports whether the container preserves samples exactly.
	Lossless bool

	// CanEncode reports whether the codec can produce output bytes.
	// Decode-only containers cannot be used as a conversion target.
	CanEncode bool
}

// Codecs returns information about all registered container codecs, sorted
// by container identifier.
func Codecs() []CodecInfo {
	reg := defaultConverter.registry
	containers := reg.Containers()

	out := make([]CodecInfo, 0, len(containers))
	for _, name := range containers {
		c, err := reg.Lookup(name)
		if err != nil {
			continue
		}
		caps := c.Capabilities()
		out = append(out, CodecInfo{
			Name:          c.Name(),
			Container:     c.Container(),
			Extensions:    c.Extensions(),
			MaxSampleRate: caps.MaxSampleRate,
			MaxChannels:   caps.MaxChannels,
			BitDepths:     caps.BitDepths,
			Lossless:      caps.Lossless,
			CanEncode:     caps.CanEncode,
		})
	}
	return out
}

// SupportedContainers returns the registered container identifiers in
// sorted order.
func SupportedContainers() []string {
	return defaultConverter.registry.Containers()
}

// ContainerForExtension maps a file extension (without the leading dot) to
// its container identifier. Returns false if the extension is unknown.
func ContainerForExtension(ext string) (string, bool) {
	c, err := defaultConverter.registry.LookupByExtension(ext)
	if err != nil {
		return "", false
	}
	return c.Container(), true
}
