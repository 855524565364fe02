package mcptools

// Tool name prefix for all calculator tools
const ToolPrefix = "calculator."

const (
	ToolPress    = ToolPrefix + "press"
	ToolEvaluate = ToolPrefix + "evaluate"
	ToolFormat   = ToolPrefix + "format"
)
