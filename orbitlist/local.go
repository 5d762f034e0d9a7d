// SPDX-License-Identifier: MIT

package orbitlist

import (
	"fmt"

	"github.com/katalvlaran/clustex/lattice"
	"github.com/katalvlaran/clustex/orbit"
	"github.com/katalvlaran/clustex/structure"
)

// SiteMapper resolves a lattice site of the primitive structure to the
// supercell lattice site at the same position.
type SiteMapper interface {
	MapSite(site lattice.Site) (lattice.Site, error)
}

// PositionMapper maps sites by Cartesian position, without caching.
type PositionMapper struct {
	Primitive *structure.Structure
	Supercell *structure.Structure
}

// MapSite implements SiteMapper.
func (m PositionMapper) MapSite(site lattice.Site) (lattice.Site, error) {
	r, err := m.Primitive.Position(site)
	if err != nil {
		return lattice.Site{}, err
	}

	return m.Supercell.FindLatticeSiteByPosition(r)
}

// LocalOrbitList returns the orbits translated by the primitive-cell offset
// and re-expressed as supercell sites through mapper. A nil mapper falls back
// to PositionMapper. The receiver is only read.
func (ol *OrbitList) LocalOrbitList(supercell *structure.Structure, offset [3]int, mapper SiteMapper) (*OrbitList, error) {
	if supercell == nil || ol.primitive == nil {
		return nil, fmt.Errorf("LocalOrbitList: %w", ErrNilStructure)
	}
	if mapper == nil {
		mapper = PositionMapper{Primitive: ol.primitive, Supercell: supercell}
	}

	local := &OrbitList{
		primitive: ol.primitive,
		pm:        ol.pm,
		col1:      ol.col1,
		orbits:    make([]*orbit.Orbit, 0, len(ol.orbits)),
	}
	for i, o := range ol.orbits {
		moved := o.Translate(offset)
		equivalent := moved.EquivalentSites()
		for _, sites := range equivalent {
			for j, site := range sites {
				mapped, err := mapper.MapSite(site)
				if err != nil {
					return nil, fmt.Errorf("LocalOrbitList: orbit %d: %w", i, err)
				}
				sites[j] = mapped
			}
		}
		moved.SetEquivalentSites(equivalent)
		local.orbits = append(local.orbits, moved)
	}

	return local, nil
}
