package registry

import "github.com/wlrelay/wlrelay/internal/wire"

// Default is the interface set the proxy understands out of the box: the
// core Wayland globals plus the xdg-shell and decoration extensions, and
// the window-management protocol this proxy was built to intermediate.
//
// This table is the data the generic dispatch engine consumes; it carries
// no behavior of its own. A deployment that needs a different interface
// set constructs its own Registry from its own table instead of editing
// this one.
var Default = New(defaultInterfaces())

func argInt(name string) ArgSchema    { return ArgSchema{Name: name, Type: wire.Int} }
func argUint(name string) ArgSchema   { return ArgSchema{Name: name, Type: wire.Uint} }
func argFixed(name string) ArgSchema  { return ArgSchema{Name: name, Type: wire.Fixed} }
func argString(name string) ArgSchema { return ArgSchema{Name: name, Type: wire.String} }
func argStringN(name string) ArgSchema {
	return ArgSchema{Name: name, Type: wire.String, Nullable: true}
}
func argArray(name string) ArgSchema { return ArgSchema{Name: name, Type: wire.Array} }
func argFD(name string) ArgSchema    { return ArgSchema{Name: name, Type: wire.FD} }
func argObj(name, iface string) ArgSchema {
	return ArgSchema{Name: name, Type: wire.Object, Interface: iface}
}
func argObjN(name, iface string) ArgSchema {
	return ArgSchema{Name: name, Type: wire.Object, Interface: iface, Nullable: true}
}
func argNewID(name, iface string) ArgSchema {
	return ArgSchema{Name: name, Type: wire.NewID, Interface: iface}
}
func argPolyNewID(name string) ArgSchema {
	return ArgSchema{Name: name, Type: wire.NewID, Polymorphic: true}
}

func op(name string, args ...ArgSchema) OpSchema {
	return OpSchema{Name: name, Args: args}
}

func destructorOp(name string, args ...ArgSchema) OpSchema {
	return OpSchema{Name: name, Args: args, Destructor: true}
}

func defaultInterfaces() []InterfaceSchema {
	return []InterfaceSchema{
		{
			Name:       "wl_display",
			MaxVersion: 1,
			Requests: []OpSchema{
				op("sync", argNewID("callback", "wl_callback")),
				op("get_registry", argNewID("registry", "wl_registry")),
			},
			Events: []OpSchema{
				op("error", ArgSchema{Name: "object_id", Type: wire.Object}, argUint("code"), argString("message")),
				op("delete_id", argUint("id")),
			},
		},
		{
			Name:       "wl_registry",
			MaxVersion: 1,
			Requests: []OpSchema{
				op("bind", argUint("name"), argPolyNewID("id")),
			},
			Events: []OpSchema{
				op("global", argUint("name"), argString("interface"), argUint("version")),
				op("global_remove", argUint("name")),
			},
		},
		{
			Name:       "wl_callback",
			MaxVersion: 1,
			Events: []OpSchema{
				destructorOp("done", argUint("callback_data")),
			},
		},
		{
			Name:       "wl_compositor",
			MaxVersion: 6,
			Requests: []OpSchema{
				op("create_surface", argNewID("id", "wl_surface")),
				op("create_region", argNewID("id", "wl_region")),
			},
		},
		{
			Name:       "wl_shm",
			MaxVersion: 2,
			Requests: []OpSchema{
				op("create_pool", argNewID("id", "wl_shm_pool"), argFD("fd"), argInt("size")),
			},
			Events: []OpSchema{
				op("format", argUint("format")),
			},
		},
		{
			Name:       "wl_shm_pool",
			MaxVersion: 2,
			Requests: []OpSchema{
				op("create_buffer", argNewID("id", "wl_buffer"), argInt("offset"), argInt("width"),
					argInt("height"), argInt("stride"), argUint("format")),
				destructorOp("destroy"),
				op("resize", argInt("size")),
			},
		},
		{
			Name:       "wl_buffer",
			MaxVersion: 1,
			Requests: []OpSchema{
				destructorOp("destroy"),
			},
			Events: []OpSchema{
				op("release"),
			},
		},
		{
			Name:       "wl_region",
			MaxVersion: 1,
			Requests: []OpSchema{
				destructorOp("destroy"),
				op("add", argInt("x"), argInt("y"), argInt("width"), argInt("height")),
				op("subtract", argInt("x"), argInt("y"), argInt("width"), argInt("height")),
			},
		},
		{
			Name:       "wl_surface",
			MaxVersion: 6,
			Requests: []OpSchema{
				destructorOp("destroy"),
				op("attach", argObjN("buffer", "wl_buffer"), argInt("x"), argInt("y")),
				op("damage", argInt("x"), argInt("y"), argInt("width"), argInt("height")),
				op("frame", argNewID("callback", "wl_callback")),
				op("set_opaque_region", argObjN("region", "wl_region")),
				op("set_input_region", argObjN("region", "wl_region")),
				op("commit"),
				op("set_buffer_transform", argInt("transform")),
				op("set_buffer_scale", argInt("scale")),
				op("damage_buffer", argInt("x"), argInt("y"), argInt("width"), argInt("height")),
				op("offset", argInt("x"), argInt("y")),
			},
			Events: []OpSchema{
				op("enter", argObj("output", "wl_output")),
				op("leave", argObj("output", "wl_output")),
				op("preferred_buffer_scale", argInt("factor")),
				op("preferred_buffer_transform", argUint("transform")),
			},
		},
		{
			Name:       "wl_output",
			MaxVersion: 4,
			Requests: []OpSchema{
				destructorOp("release"),
			},
			Events: []OpSchema{
				op("geometry", argInt("x"), argInt("y"), argInt("physical_width"), argInt("physical_height"),
					argInt("subpixel"), argString("make"), argString("model"), argInt("transform")),
				op("mode", argUint("flags"), argInt("width"), argInt("height"), argInt("refresh")),
				op("done"),
				op("scale", argInt("factor")),
				op("name", argString("name")),
				op("description", argString("description")),
			},
		},
		{
			Name:       "wl_seat",
			MaxVersion: 9,
			Requests: []OpSchema{
				op("get_pointer", argNewID("id", "wl_pointer")),
				op("get_keyboard", argNewID("id", "wl_keyboard")),
				op("get_touch", argNewID("id", "wl_touch")),
				destructorOp("release"),
			},
			Events: []OpSchema{
				op("capabilities", argUint("capabilities")),
				op("name", argString("name")),
			},
		},
		{
			Name:       "wl_pointer",
			MaxVersion: 9,
			Requests: []OpSchema{
				op("set_cursor", argUint("serial"), argObjN("surface", "wl_surface"), argInt("hotspot_x"), argInt("hotspot_y")),
				destructorOp("release"),
			},
			Events: []OpSchema{
				op("enter", argUint("serial"), argObj("surface", "wl_surface"), argFixed("surface_x"), argFixed("surface_y")),
				op("leave", argUint("serial"), argObj("surface", "wl_surface")),
				op("motion", argUint("time"), argFixed("surface_x"), argFixed("surface_y")),
				op("button", argUint("serial"), argUint("time"), argUint("button"), argUint("state")),
				op("axis", argUint("time"), argUint("axis"), argFixed("value")),
				op("frame"),
			},
		},
		{
			Name:       "wl_keyboard",
			MaxVersion: 9,
			Requests: []OpSchema{
				destructorOp("release"),
			},
			Events: []OpSchema{
				op("keymap", argUint("format"), argFD("fd"), argUint("size")),
				op("enter", argUint("serial"), argObj("surface", "wl_surface"), argArray("keys")),
				op("leave", argUint("serial"), argObj("surface", "wl_surface")),
				op("key", argUint("serial"), argUint("time"), argUint("key"), argUint("state")),
				op("modifiers", argUint("serial"), argUint("mods_depressed"), argUint("mods_latched"),
					argUint("mods_locked"), argUint("group")),
			},
		},
		{
			Name:       "wl_touch",
			MaxVersion: 9,
			Requests: []OpSchema{
				destructorOp("release"),
			},
			Events: []OpSchema{
				op("down", argUint("serial"), argUint("time"), argObj("surface", "wl_surface"), argInt("id"),
					argFixed("x"), argFixed("y")),
				op("up", argUint("serial"), argUint("time"), argInt("id")),
				op("motion", argUint("time"), argInt("id"), argFixed("x"), argFixed("y")),
				op("frame"),
				op("cancel"),
			},
		},
		{
			Name:       "wl_subcompositor",
			MaxVersion: 1,
			Requests: []OpSchema{
				destructorOp("destroy"),
				op("get_subsurface", argNewID("id", "wl_subsurface"), argObj("surface", "wl_surface"), argObj("parent", "wl_surface")),
			},
		},
		{
			Name:       "wl_subsurface",
			MaxVersion: 1,
			Requests: []OpSchema{
				destructorOp("destroy"),
				op("set_position", argInt("x"), argInt("y")),
				op("place_above", argObj("sibling", "wl_surface")),
				op("place_below", argObj("sibling", "wl_surface")),
				op("set_sync"),
				op("set_desync"),
			},
		},
		{
			Name:       "xdg_wm_base",
			MaxVersion: 6,
			Requests: []OpSchema{
				destructorOp("destroy"),
				op("create_positioner", argNewID("id", "xdg_positioner")),
				op("get_xdg_surface", argNewID("id", "xdg_surface"), argObj("surface", "wl_surface")),
				op("pong", argUint("serial")),
			},
			Events: []OpSchema{
				op("ping", argUint("serial")),
			},
		},
		{
			Name:       "xdg_positioner",
			MaxVersion: 6,
			Requests: []OpSchema{
				destructorOp("destroy"),
				op("set_size", argInt("width"), argInt("height")),
				op("set_anchor_rect", argInt("x"), argInt("y"), argInt("width"), argInt("height")),
				op("set_anchor", argUint("anchor")),
				op("set_gravity", argUint("gravity")),
				op("set_constraint_adjustment", argUint("constraint_adjustment")),
				op("set_offset", argInt("x"), argInt("y")),
				op("set_reactive"),
				op("set_parent_size", argInt("parent_width"), argInt("parent_height")),
				op("set_parent_configure", argUint("serial")),
			},
		},
		{
			Name:       "xdg_surface",
			MaxVersion: 6,
			Requests: []OpSchema{
				destructorOp("destroy"),
				op("get_toplevel", argNewID("id", "xdg_toplevel")),
				op("get_popup", argNewID("id", "xdg_popup"), argObjN("parent", "xdg_surface"), argObj("positioner", "xdg_positioner")),
				op("set_window_geometry", argInt("x"), argInt("y"), argInt("width"), argInt("height")),
				op("ack_configure", argUint("serial")),
			},
			Events: []OpSchema{
				op("configure", argUint("serial")),
			},
		},
		{
			Name:       "xdg_toplevel",
			MaxVersion: 6,
			Requests: []OpSchema{
				destructorOp("destroy"),
				op("set_parent", argObjN("parent", "xdg_toplevel")),
				op("set_title", argString("title")),
				op("set_app_id", argString("app_id")),
				op("show_window_menu", argObj("seat", "wl_seat"), argUint("serial"), argInt("x"), argInt("y")),
				op("move", argObj("seat", "wl_seat"), argUint("serial")),
				op("resize", argObj("seat", "wl_seat"), argUint("serial"), argUint("edges")),
				op("set_max_size", argInt("width"), argInt("height")),
				op("set_min_size", argInt("width"), argInt("height")),
				op("set_maximized"),
				op("unset_maximized"),
				op("set_fullscreen", argObjN("output", "wl_output")),
				op("unset_fullscreen"),
				op("set_minimized"),
			},
			Events: []OpSchema{
				op("configure", argInt("width"), argInt("height"), argArray("states")),
				op("close"),
				op("configure_bounds", argInt("width"), argInt("height")),
				op("wm_capabilities", argArray("capabilities")),
			},
		},
		{
			Name:       "xdg_popup",
			MaxVersion: 6,
			Requests: []OpSchema{
				destructorOp("destroy"),
				op("grab", argObj("seat", "wl_seat"), argUint("serial")),
				op("reposition", argObj("positioner", "xdg_positioner"), argUint("token")),
			},
			Events: []OpSchema{
				op("configure", argInt("x"), argInt("y"), argInt("width"), argInt("height")),
				op("popup_done"),
				op("repositioned", argUint("token")),
			},
		},
		{
			Name:       "zxdg_decoration_manager_v1",
			MaxVersion: 1,
			Requests: []OpSchema{
				destructorOp("destroy"),
				op("get_toplevel_decoration", argNewID("id", "zxdg_toplevel_decoration_v1"), argObj("toplevel", "xdg_toplevel")),
			},
		},
		{
			Name:       "zxdg_toplevel_decoration_v1",
			MaxVersion: 1,
			Requests: []OpSchema{
				destructorOp("destroy"),
				op("set_mode", argUint("mode")),
				op("unset_mode"),
			},
			Events: []OpSchema{
				op("configure", argUint("mode")),
			},
		},

		// river_window_manager_v1 and river_window_v1 are drawn from the
		// real generated Rust proxy this spec traces to: a window-management
		// protocol in which the window manager is the client and the
		// compositor is the server. Opcode direction below follows which
		// endpoint (self.core.state.server vs the owning client) each
		// try_send_* emitter in the original targets.
		{
			Name:       "river_window_manager_v1",
			MaxVersion: 1,
			Requests: []OpSchema{
				destructorOp("destroy"),
			},
			Events: []OpSchema{
				op("window", argNewID("id", "river_window_v1")),
				op("manage_start"),
				op("manage_end"),
				op("finished"),
			},
		},
		{
			Name:       "river_window_v1",
			MaxVersion: 3,
			Requests: []OpSchema{
				destructorOp("destroy"),
				op("close"),
				op("get_node", argNewID("id", "river_node_v1")),
				op("propose_dimensions", argInt("width"), argInt("height"), argUint("serial")),
				op("set_tiled", argUint("edges")),
				op("inform_maximized"),
				op("inform_unmaximized"),
				op("fullscreen", argObjN("output", "wl_output")),
				op("exit_fullscreen"),
				op("set_capabilities", argUint("capabilities")),
				op("unreliable_pid", argUint("pid")),
			},
			Events: []OpSchema{
				destructorOp("closed"),
				op("dimensions_hint", argInt("min_width"), argInt("min_height"), argInt("max_width"), argInt("max_height")),
				op("dimensions", argInt("width"), argInt("height"), argUint("serial")),
				op("hide"),
				op("show"),
				op("app_id", argStringN("app_id")),
				op("title", argStringN("title")),
				op("parent", argObjN("parent", "river_window_v1")),
				op("decoration_hint", argUint("hint")),
				op("use_csd"),
				op("use_ssd"),
				op("show_window_menu_requested", argObj("seat", "wl_seat"), argUint("serial"), argInt("x"), argInt("y")),
				op("maximize_requested"),
				op("unmaximize_requested"),
				op("fullscreen_requested", argObjN("output", "wl_output")),
				op("exit_fullscreen_requested"),
				op("minimize_requested"),
			},
		},
		{
			Name:       "river_node_v1",
			MaxVersion: 1,
			Requests: []OpSchema{
				destructorOp("destroy"),
			},
		},

		// river_xkb_config_v1 is the global singleton of the companion
		// xkbcommon-configuration protocol referenced (by module
		// declaration only) alongside river_window_management_v1 in the
		// original proxy this spec traces to. Its real opcode set extends
		// to per-keyboard layout switching; only the global's single
		// teardown opcode is reproduced here as a second, deliberately
		// minimal sample of a generated interface next to river_window_v1's
		// much larger one.
		{
			Name:       "river_xkb_config_v1",
			MaxVersion: 1,
			Requests: []OpSchema{
				destructorOp("destroy"),
			},
		},
	}
}
