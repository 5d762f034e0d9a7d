// SPDX-License-Identifier: MIT

// Package export turns orbit lists and cluster counts into plain snapshot
// documents and encodes them as CBOR or YAML.
//
// CBOR output uses Core Deterministic Encoding (RFC 8949 §4.2): the same
// snapshot always produces the same bytes, so Fingerprint, a keyed BLAKE3
// hash of those bytes, identifies a result independently of the machine or
// run that produced it. YAML is the human-readable form of the same
// document.
package export
