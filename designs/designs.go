package designs

// Design is the catalog entry served to the frontend: the remote design
// overlaid with local import state.
type Design struct {
	DesignID      string `json:"designId"`
	Title         string `json:"title"`
	ThumbnailURL  string `json:"thumbnailUrl,omitempty"`
	Imported      bool   `json:"imported"`
	LocalImageURL string `json:"localImageUrl,omitempty"`
}

// ImageURLPrefix is where the server exposes imported PNGs.
const ImageURLPrefix = "/images/"

// DefaultTitle stands in for designs the platform returns without one.
const DefaultTitle = "Untitled Design"
