package main

import (
	"video2csv/cmd/v2csv/cmd"

	// Import backends to register them
	_ "video2csv/internal/app/api/openai/whisper"
	_ "video2csv/internal/app/api/riva"
	_ "video2csv/internal/app/api/whisper_http"
)

func main() {
	cmd.Execute()
}
