package cli

// Options represents command line options
type Options struct {
	Serve    ServeCommand    `command:"serve" description:"host inference adapters"`
	Segment  SegmentCommand  `command:"segment" description:"segment a volume"`
	Generate GenerateCommand `command:"generate" description:"generate a synthetic CT volume"`
	Chat     ChatCommand     `command:"chat" description:"ask a multimodal model about a volume slice"`
}

// Common holds options shared by all commands
type Common struct {
	ConfigURL string `short:"c" long:"config" description:"config URL"`
	Debug     bool   `short:"d" long:"debug" description:"debug logging"`
}

type ServeCommand struct {
	Common
	Type string `short:"T" long:"transport-type" description:"transport type" choice:"stdio" choice:"sse" choice:"streamable"`
	Addr string `short:"a" long:"addr" description:"listen address"`
}

type SegmentCommand struct {
	Common
	Image    string `short:"i" long:"image" description:"input NRRD volume URL" required:"true"`
	Model    string `short:"m" long:"model" description:"segmentation model" choice:"vista3d" choice:"nv-segment-ct" choice:"nv-segment-mri" default:"vista3d"`
	Classes  []int  `short:"l" long:"label" description:"class to segment, repeatable; none segments everything"`
	Modality string `long:"modality" description:"MRI modality" choice:"MRI_BODY" choice:"CT_BODY" choice:"MRI_BRAIN" default:"MRI_BODY"`
	Output   string `short:"o" long:"output" description:"output URL" default:"."`
}

type GenerateCommand struct {
	Common
	XY      int       `long:"xy" description:"XY resolution" choice:"256" choice:"384" choice:"512" default:"256"`
	Z       int       `long:"z" description:"Z resolution" default:"256"`
	Spacing []float64 `long:"spacing" description:"voxel spacing in mm, one or three values"`
	Anatomy []string  `long:"anatomy" description:"anatomy to include, repeatable"`
	Output  string    `short:"o" long:"output" description:"output URL" default:"."`
}

type ChatCommand struct {
	Common
	Image  string `short:"i" long:"image" description:"input NRRD volume URL" required:"true"`
	Slice  int    `short:"s" long:"slice" description:"axial slice index"`
	Model  string `short:"m" long:"model" description:"chat model" default:"MedGemma"`
	Prompt string `short:"p" long:"prompt" description:"question" required:"true"`
}
