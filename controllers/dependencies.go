package controllers

import (
	"time"

	"github.com/Kariqs/agent-orders-api/services"
	"github.com/Kariqs/agent-orders-api/utils"
)

// Wired by main. Tests replace them as needed.
var (
	Images   utils.ImageStore = &utils.LocalImageStore{Dir: "images"}
	Renderer services.DocumentRenderer
	Location = time.UTC
)
