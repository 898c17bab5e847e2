package figma

// FileResponse represents the complete response from the Figma file API endpoint.
// It contains the file metadata, the document tree, published styles and the
// component/component-set metadata tables.
type FileResponse struct {
	Name          string                  `json:"name"`
	LastModified  string                  `json:"lastModified"`
	ThumbnailURL  string                  `json:"thumbnailUrl"`
	Version       string                  `json:"version"`
	Document      Node                    `json:"document"`
	Components    map[string]Component    `json:"components,omitempty"`
	ComponentSets map[string]ComponentSet `json:"componentSets,omitempty"`
	Styles        map[string]Style        `json:"styles"`
	SchemaVersion int                     `json:"schemaVersion"`
}

// ImagesResponse is returned by the render endpoint: node ID -> temporary download URL.
type ImagesResponse struct {
	Err    string            `json:"err,omitempty"`
	Images map[string]string `json:"images"`
}

// Component represents a Figma component definition with its metadata.
// Components are reusable design elements that can be instantiated throughout the file.
type Component struct {
	Key            string `json:"key"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	ComponentSetID string `json:"componentSetId,omitempty"`
}

// ComponentSet groups the variants of one component family.
type ComponentSet struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Style represents a published Figma style with its basic properties.
// Styles can be colors (FILL), text styles (TEXT), effects (EFFECT), or layout grids (GRID).
type Style struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StyleType   string `json:"styleType"`
}

// Node represents a single element in the Figma document tree hierarchy.
// Nodes can be frames, groups, text, shapes, or other Figma elements, each with their own properties
// such as fills, strokes, effects, layout settings, and children nodes.
//
// Fields that Figma omits when they hold their default value are pointers so
// that "absent" can be told apart from "zero".
type Node struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	Type                NodeType          `json:"type"`
	Visible             *bool             `json:"visible,omitempty"`
	Children            []Node            `json:"children,omitempty"`
	Background          []Paint           `json:"background,omitempty"`
	BackgroundColor     *Color            `json:"backgroundColor,omitempty"`
	Fills               []Paint           `json:"fills,omitempty"`
	Strokes             []Paint           `json:"strokes,omitempty"`
	StrokeWeight        *float64          `json:"strokeWeight,omitempty"`
	CornerRadius        *float64          `json:"cornerRadius,omitempty"`
	Effects             []Effect          `json:"effects,omitempty"`
	Opacity             *float64          `json:"opacity,omitempty"`
	BlendMode           string            `json:"blendMode,omitempty"`
	Characters          *string           `json:"characters,omitempty"`
	Style               *TypeStyle        `json:"style,omitempty"`
	Styles              map[string]string `json:"styles,omitempty"`
	AbsoluteBoundingBox *Rectangle        `json:"absoluteBoundingBox,omitempty"`
	LayoutMode          string            `json:"layoutMode,omitempty"`
	PaddingLeft         *float64          `json:"paddingLeft,omitempty"`
	PaddingRight        *float64          `json:"paddingRight,omitempty"`
	PaddingTop          *float64          `json:"paddingTop,omitempty"`
	PaddingBottom       *float64          `json:"paddingBottom,omitempty"`
	ItemSpacing         *float64          `json:"itemSpacing,omitempty"`
	ComponentID         string            `json:"componentId,omitempty"`
}

// IsVisible reports whether the node is rendered. Figma omits the field for visible nodes.
func (n *Node) IsVisible() bool {
	return n.Visible == nil || *n.Visible
}

// Color represents an RGBA color with float values ranging from 0 to 1.
// The R, G, B, and A (alpha/opacity) values must be converted to 0-255 range for standard use.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Paint represents a fill or stroke applied to a Figma node.
// It includes the paint type (SOLID, GRADIENT_LINEAR, etc.), visibility, opacity, and color information.
type Paint struct {
	Type                    PaintType   `json:"type"`
	Visible                 *bool       `json:"visible,omitempty"`
	Opacity                 *float64    `json:"opacity,omitempty"`
	BlendMode               string      `json:"blendMode,omitempty"`
	Color                   *Color      `json:"color,omitempty"`
	GradientHandlePositions []Vector    `json:"gradientHandlePositions,omitempty"`
	GradientStops           []ColorStop `json:"gradientStops,omitempty"`
	ImageRef                string      `json:"imageRef,omitempty"`
	ScaleMode               string      `json:"scaleMode,omitempty"`
}

// IsVisible reports whether the paint is rendered. Figma omits the field for visible paints.
func (p Paint) IsVisible() bool {
	return p.Visible == nil || *p.Visible
}

// Alpha returns the paint opacity, 1 when absent.
func (p Paint) Alpha() float64 {
	if p.Opacity == nil {
		return 1
	}
	return *p.Opacity
}

// PaintType enumerates the Paint.Type values.
type PaintType string

// Paint types.
const (
	PaintSolid           PaintType = "SOLID"
	PaintGradientLinear  PaintType = "GRADIENT_LINEAR"
	PaintGradientRadial  PaintType = "GRADIENT_RADIAL"
	PaintGradientAngular PaintType = "GRADIENT_ANGULAR"
	PaintGradientDiamond PaintType = "GRADIENT_DIAMOND"
	PaintImage           PaintType = "IMAGE"
)

// ColorStop is a single gradient stop; Position is in the 0-1 range.
type ColorStop struct {
	Position float64 `json:"position"`
	Color    Color   `json:"color"`
}

// Effect represents a visual effect applied to a Figma node such as drop shadows, inner shadows, or blur effects.
// It includes positioning (offset), blur radius, spread, color, and blend mode settings.
type Effect struct {
	Type      string  `json:"type"`
	Visible   bool    `json:"visible"`
	Radius    float64 `json:"radius,omitempty"`
	Color     *Color  `json:"color,omitempty"`
	Offset    *Vector `json:"offset,omitempty"`
	Spread    float64 `json:"spread,omitempty"`
	BlendMode string  `json:"blendMode,omitempty"`
}

// Vector represents a 2D coordinate or offset with X and Y values.
// Used for positioning effects like shadows and for gradient handles.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TypeStyle represents comprehensive text styling properties from Figma.
// Every field is optional in the API payload.
type TypeStyle struct {
	FontFamily                *string  `json:"fontFamily,omitempty"`
	FontPostScriptName        *string  `json:"fontPostScriptName,omitempty"`
	FontWeight                *float64 `json:"fontWeight,omitempty"`
	FontSize                  *float64 `json:"fontSize,omitempty"`
	LineHeightPx              *float64 `json:"lineHeightPx,omitempty"`
	LineHeightPercent         *float64 `json:"lineHeightPercent,omitempty"`
	LineHeightPercentFontSize *float64 `json:"lineHeightPercentFontSize,omitempty"`
	LetterSpacing             *float64 `json:"letterSpacing,omitempty"`
	TextAlignHorizontal       *string  `json:"textAlignHorizontal,omitempty"`
	TextAlignVertical         *string  `json:"textAlignVertical,omitempty"`
	TextDecoration            *string  `json:"textDecoration,omitempty"`
	TextCase                  *string  `json:"textCase,omitempty"`
}

// Rectangle represents a bounding box with position (X, Y) and dimensions (Width, Height).
// Used to define the absolute position and size of nodes in the Figma canvas.
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
