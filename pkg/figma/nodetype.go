package figma

// NodeType is the Node.Type discriminator.
type NodeType string

// Node types recognized by the extractor.
const (
	NodeDocument     NodeType = "DOCUMENT"
	NodeCanvas       NodeType = "CANVAS"
	NodeFrame        NodeType = "FRAME"
	NodeGroup        NodeType = "GROUP"
	NodeSection      NodeType = "SECTION"
	NodeText         NodeType = "TEXT"
	NodeRectangle    NodeType = "RECTANGLE"
	NodeEllipse      NodeType = "ELLIPSE"
	NodeVector       NodeType = "VECTOR"
	NodeLine         NodeType = "LINE"
	NodeStar         NodeType = "STAR"
	NodePolygon      NodeType = "REGULAR_POLYGON"
	NodeBooleanOp    NodeType = "BOOLEAN_OPERATION"
	NodeSlice        NodeType = "SLICE"
	NodeInstance     NodeType = "INSTANCE"
	NodeComponent    NodeType = "COMPONENT"
	NodeComponentSet NodeType = "COMPONENT_SET"
)

var knownNodeTypes = map[NodeType]struct{}{
	NodeDocument:     {},
	NodeCanvas:       {},
	NodeFrame:        {},
	NodeGroup:        {},
	NodeSection:      {},
	NodeText:         {},
	NodeRectangle:    {},
	NodeEllipse:      {},
	NodeVector:       {},
	NodeLine:         {},
	NodeStar:         {},
	NodePolygon:      {},
	NodeBooleanOp:    {},
	NodeSlice:        {},
	NodeInstance:     {},
	NodeComponent:    {},
	NodeComponentSet: {},
}

// ParseNodeType returns the NodeType named by s and whether it is a known type.
// Matching is exact: node types are upper-case in the API.
func ParseNodeType(s string) (NodeType, bool) {
	t := NodeType(s)
	_, ok := knownNodeTypes[t]
	return t, ok
}
