// Package domain contains the core types shared by the Kinetic engines:
// reveal targets, scroll state, dialog sessions and the composed inquiry
// message. It has no dependencies on adapters or host surfaces.
package domain
