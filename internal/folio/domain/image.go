package domain

// ImageKind discriminates the ImageRef union.
type ImageKind string

const (
	ImageDefault ImageKind = "default"
	ImageLocal   ImageKind = "local"
	ImageRemote  ImageKind = "remote"
)

// ImageRef points at the stored picture of a user or content entry. It is one of
//
//	{Kind: local,  Path}            a file under the media directory
//	{Kind: remote, URL, ProviderID} an object held by the cloud backend
//	{Kind: default}                 the shared placeholder, never deleted
//
// The zero value is the default image. The placeholder's public URL is
// configuration and is never stored in a reference.
type ImageRef struct {
	Kind       ImageKind `json:"kind" bson:"kind"`
	Path       string    `json:"path,omitempty" bson:"path,omitempty"`
	URL        string    `json:"url,omitempty" bson:"url,omitempty"`
	ProviderID string    `json:"providerId,omitempty" bson:"providerId,omitempty"`
}

// DefaultImage is the shared placeholder reference.
var DefaultImage = ImageRef{Kind: ImageDefault}

// LocalImage references a file relative to the media directory.
func LocalImage(path string) ImageRef {
	return ImageRef{Kind: ImageLocal, Path: path}
}

// RemoteImage references an object in the cloud backend.
func RemoteImage(url, providerID string) ImageRef {
	return ImageRef{Kind: ImageRemote, URL: url, ProviderID: providerID}
}

// IsDefault reports whether r is the placeholder. Only the kind is compared,
// so a change to the placeholder's URL can never make it look deletable.
func (r ImageRef) IsDefault() bool {
	return r.Kind == ImageDefault || r.Kind == ""
}

// Normalize maps the zero value and any stray fields on a default reference
// to DefaultImage.
func (r ImageRef) Normalize() ImageRef {
	if r.IsDefault() {
		return DefaultImage
	}
	return r
}

// SameObject reports whether a and b address the same stored object.
func (r ImageRef) SameObject(o ImageRef) bool {
	a, b := r.Normalize(), o.Normalize()
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ImageLocal:
		return a.Path == b.Path
	case ImageRemote:
		return a.ProviderID == b.ProviderID
	default:
		return true
	}
}

// Key is the storage address of the object: the path for local files and the
// provider id for remote ones. It is empty for the default image.
func (r ImageRef) Key() string {
	switch r.Kind {
	case ImageLocal:
		return r.Path
	case ImageRemote:
		return r.ProviderID
	default:
		return ""
	}
}
