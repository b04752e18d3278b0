// Copyright (c) 2026 vkt
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"flag"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/vkt/hellovk/asset"
	"github.com/vkt/hellovk/core"
)

func init() {
	// Vulkan and SDL both want to stay on the main thread.
	runtime.LockOSThread()
}

var (
	cpuProfile   = flag.String("cpuprof", "", "Profile CPU usage to file")
	memProfile   = flag.String("memprof", "", "Profile memory usage into a file")
	traceProfile = flag.String("trace", "", "Trace output for profiling")
	debug        = flag.Bool("vkdbg", false, "Load Vulkan validation layers")
	assetDir     = flag.String("assets", "./shaders", "Directory holding compiled shaders and textures")
	assetPak     = flag.String("pak", "", "Pak archive with shaders and textures, overrides -assets")
	verbose      = flag.Bool("v", false, "Debug logging")
)

func newWindow(cfg core.RendererConfiguration) *sdl.Window {
	window, err := sdl.CreateWindow("Hello Triangle",
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.ScreenWidth),
		int32(cfg.ScreenHeight),
		sdl.WINDOW_VULKAN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		log.WithError(err).Fatal("window creation failed")
	}
	return window
}

// openAssets picks the asset source: a pak archive when given one,
// a plain directory otherwise.
func openAssets() asset.Source {
	if *assetPak == "" {
		return asset.Dir(*assetDir)
	}
	f, err := os.Open(*assetPak)
	if err != nil {
		log.WithError(err).Fatal("opening pak archive failed")
	}
	pak, err := asset.OpenPak(f)
	if err != nil {
		log.WithError(err).Fatal("reading pak archive failed")
	}
	return pak
}

func main() {
	flag.Parse()
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.WithError(err).Fatal("cpu profile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.WithError(err).Fatal("cpu profile")
		}
		defer pprof.StopCPUProfile()
	}

	if *traceProfile != "" {
		f, err := os.Create(*traceProfile)
		if err != nil {
			log.WithError(err).Fatal("trace profile")
		}
		if err := trace.Start(f); err != nil {
			log.WithError(err).Fatal("trace profile")
		}
		defer trace.Stop()
	}

	configuration := core.FromEnv()
	configuration.Instance.DebugMode = configuration.Instance.DebugMode || *debug
	configuration.Renderer.DebugMode = configuration.Instance.DebugMode

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		log.WithError(err).Fatal("sdl init failed")
	}
	defer sdl.Quit()

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		log.WithError(err).Fatal("vulkan loader unavailable")
	}
	defer sdl.VulkanUnloadLibrary()

	window := newWindow(configuration.Renderer)
	defer window.Destroy()

	configuration.Instance.Extensions = window.VulkanGetInstanceExtensions()

	vkInstance, err := core.NewVulkanInstance(
		core.DefaultApplicationInfo,
		sdl.VulkanGetVkGetInstanceProcAddr(),
		configuration.Instance)
	if err != nil {
		log.WithError(err).Fatal("instance creation failed")
	}
	defer vkInstance.Destroy()

	surface, err := window.VulkanCreateSurface(vkInstance.Instance())
	if err != nil {
		log.WithError(err).Fatal("surface creation failed")
	}
	vkInstance.SetSurface(surface)

	vkRenderer, err := core.NewVulkanRenderer(vkInstance, configuration.Renderer)
	if err != nil {
		log.WithError(err).Fatal("renderer creation failed")
	}
	vkRenderer.Reset(openAssets())

	if err := vkRenderer.Initialise(); err != nil {
		log.WithError(err).Fatal("renderer initialisation failed")
	}
	defer vkRenderer.Destroy()

	timeService := core.NewTime(configuration.Time)

Loop:
	for {
		select {
		case <-timeService.FpsTicker().C:
			if err := vkRenderer.Draw(); err != nil {
				if core.IsFatal(err) {
					log.WithError(err).Fatal("draw failed")
				}
				log.WithError(err).Warn("frame skipped")
			}
		case <-timeService.EventTicker().C:
			for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				switch et := event.(type) {
				case *sdl.KeyboardEvent:
					if et.Keysym.Sym == sdl.K_ESCAPE {
						break Loop
					}
				case *sdl.WindowEvent:
					if et.Event == sdl.WINDOWEVENT_SIZE_CHANGED ||
						et.Event == sdl.WINDOWEVENT_RESIZED {
						vkRenderer.NotifyOrientationChange()
					}
				case *sdl.QuitEvent:
					break Loop
				}
			}
		}
	}

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.WithError(err).Fatal("mem profile")
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.WithError(err).Fatal("mem profile")
		}
	}
}
