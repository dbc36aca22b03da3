// Package bounds provides axis-aligned bounding volumes and the tiered
// spatial predicates used to classify them against planes, spheres,
// lines, rays and other boxes. Cheap radius tests run first; the box
// vertices and faces are only generated when the cheap test is
// inconclusive.
package bounds
