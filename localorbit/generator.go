// SPDX-License-Identifier: MIT

package localorbit

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/clustex/lattice"
	"github.com/katalvlaran/clustex/orbitlist"
	"github.com/katalvlaran/clustex/structure"
)

// Generator produces local and full orbit lists of one supercell.
type Generator struct {
	primitive *orbitlist.OrbitList
	supercell *structure.Structure
	offsets   [][3]int

	workers int
	logger  *log.Logger

	mu          sync.RWMutex
	primToSuper map[lattice.Site]lattice.Site
}

// New locates the supercell sites in the primitive lattice and collects the
// unique primitive-cell offsets, sorted.
func New(primitive *orbitlist.OrbitList, supercell *structure.Structure, opts ...Option) (*Generator, error) {
	if primitive == nil || primitive.PrimitiveStructure() == nil || supercell == nil {
		return nil, fmt.Errorf("localorbit.New: %w", ErrNilInput)
	}
	o := gatherOptions(opts...)
	g := &Generator{
		primitive:   primitive,
		supercell:   supercell,
		workers:     o.workers,
		logger:      o.logger,
		primToSuper: make(map[lattice.Site]lattice.Site),
	}
	if err := g.findOffsets(); err != nil {
		return nil, fmt.Errorf("localorbit.New: %w", err)
	}
	g.logger.Debug("unique offsets", "count", len(g.offsets), "supercell sites", supercell.Size())

	return g, nil
}

func (g *Generator) findOffsets() error {
	prim := g.primitive.PrimitiveStructure()
	positions := g.supercell.Positions()
	sites, err := prim.FindLatticeSitesByPositions(positions)
	if err != nil {
		return err
	}

	closest := 0
	for i, p := range positions {
		if p.Norm() < positions[closest].Norm() {
			closest = i
		}
	}
	anchor := sites[closest].Index

	for _, site := range sites {
		if site.Index == anchor {
			g.offsets = append(g.offsets, site.Offset)
		}
	}
	slices.SortFunc(g.offsets, compareOffsets)
	g.offsets = slices.Compact(g.offsets)

	if len(g.offsets)*prim.Size() != g.supercell.Size() {
		return fmt.Errorf("%d offsets × %d primitive sites for %d supercell sites: %w",
			len(g.offsets), prim.Size(), g.supercell.Size(), ErrIncommensurate)
	}

	return nil
}

func compareOffsets(a, b [3]int) int { return slices.Compare(a[:], b[:]) }

// MapSite returns the supercell lattice site at the position of a primitive
// lattice site. Results are memoized; MapSite is safe for concurrent use.
func (g *Generator) MapSite(site lattice.Site) (lattice.Site, error) {
	g.mu.RLock()
	mapped, ok := g.primToSuper[site]
	g.mu.RUnlock()
	if ok {
		return mapped, nil
	}

	r, err := g.primitive.PrimitiveStructure().Position(site)
	if err != nil {
		return lattice.Site{}, err
	}
	mapped, err = g.supercell.FindLatticeSiteByPosition(r)
	if err != nil {
		return lattice.Site{}, err
	}
	g.mu.Lock()
	g.primToSuper[site] = mapped
	g.mu.Unlock()

	return mapped, nil
}

// LocalOrbitList returns the orbit list of the primitive cell at offset,
// expressed in supercell sites.
func (g *Generator) LocalOrbitList(offset [3]int) (*orbitlist.OrbitList, error) {
	local, err := g.primitive.LocalOrbitList(g.supercell, offset, g)
	if err != nil {
		return nil, fmt.Errorf("LocalOrbitList(%v): %w", offset, err)
	}

	return local, nil
}

// LocalOrbitListAt returns the local orbit list of the i-th unique offset.
func (g *Generator) LocalOrbitListAt(i int) (*orbitlist.OrbitList, error) {
	if i < 0 || i >= len(g.offsets) {
		return nil, fmt.Errorf("LocalOrbitListAt(%d) of %d: %w", i, len(g.offsets), ErrIndexOutOfRange)
	}

	return g.LocalOrbitList(g.offsets[i])
}

// FullOrbitList builds every local orbit list on the worker pool and merges
// them in offset order. The first failing worker cancels the others.
func (g *Generator) FullOrbitList(ctx context.Context) (*orbitlist.OrbitList, error) {
	start := time.Now()
	locals := make([]*orbitlist.OrbitList, len(g.offsets))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i, offset := range g.offsets {
		i, offset := i, offset
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			local, err := g.LocalOrbitList(offset)
			if err != nil {
				return err
			}
			locals[i] = local
			g.logger.Debug("local orbit list", "offset", offset, "orbits", local.Len())
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("FullOrbitList: %w", err)
	}

	full := orbitlist.Empty(g.primitive.PrimitiveStructure())
	for i, local := range locals {
		if err := full.Merge(local); err != nil {
			return nil, fmt.Errorf("FullOrbitList: offset %v: %w", g.offsets[i], err)
		}
	}
	g.logger.Info("full orbit list built", "offsets", len(locals), "orbits", full.Len(),
		"workers", g.workers, "elapsed", time.Since(start))

	return full, nil
}

// UniqueOffsets returns a copy of the sorted primitive-cell offsets.
func (g *Generator) UniqueOffsets() [][3]int { return slices.Clone(g.offsets) }

// NumberOfUniqueOffsets returns the number of primitive cells in the supercell.
func (g *Generator) NumberOfUniqueOffsets() int { return len(g.offsets) }

// PrimitiveToSupercellMap returns a copy of the memoized site map.
func (g *Generator) PrimitiveToSupercellMap() map[lattice.Site]lattice.Site {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return maps.Clone(g.primToSuper)
}

// Clear drops the memoized site map. The unique offsets are kept.
func (g *Generator) Clear() {
	g.mu.Lock()
	clear(g.primToSuper)
	g.mu.Unlock()
}
