// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// vkinfo dumps every physical device the Vulkan loader can see as
// JSON, for checking what a target machine offers before running the
// renderer on it.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/vkt/hellovk/core"
)

func main() {
	cfg := core.InstanceConfiguration{
		DebugMode:  false,
		Extensions: []string{},
		Layers:     []string{},
	}

	vkInstance, err := core.NewVulkanInstance(core.DefaultApplicationInfo, nil, cfg)
	if err != nil {
		log.WithError(err).Fatal("instance creation failed")
	}
	defer vkInstance.Destroy()

	bytes, err := json.MarshalIndent(vkInstance.PhysicalDevicesInfo(), "", "  ")
	if err != nil {
		log.WithError(err).Fatal("encoding device info failed")
	}
	fmt.Fprintln(os.Stdout, string(bytes))
}
