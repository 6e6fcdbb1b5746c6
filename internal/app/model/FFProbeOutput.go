package model

type FFProbeOutput struct {
	Streams []struct {
		CodecType     string `json:"codec_type"`
		CodecName     string `json:"codec_name"`
		SampleRate    int    `json:"sample_rate,string"`
		Channels      int    `json:"channels"`
		BitsPerSample int    `json:"bits_per_sample"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}
