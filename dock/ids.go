// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: dock/ids.go
// Summary: Process-unique identifiers for nodes, tabs and windows.

package dock

import (
	"fmt"
	"sync/atomic"
)

// NodeID identifies a DockTree node. Zero means "no node".
type NodeID uint64

// TabID identifies a Tab. Zero means "no tab".
type TabID uint64

// WindowID identifies a floating window. Zero means "no window".
type WindowID uint64

// All three kinds share one counter, so an ID is never reused for the
// lifetime of the process, whatever its kind.
var idCounter atomic.Uint64

func nextID() uint64 { return idCounter.Add(1) }

func newNodeID() NodeID     { return NodeID(nextID()) }
func newTabID() TabID       { return TabID(nextID()) }
func newWindowID() WindowID { return WindowID(nextID()) }

func (id NodeID) String() string   { return fmt.Sprintf("node#%d", uint64(id)) }
func (id TabID) String() string    { return fmt.Sprintf("tab#%d", uint64(id)) }
func (id WindowID) String() string { return fmt.Sprintf("window#%d", uint64(id)) }
