package core

import (
	"fmt"
	"sort"
)

const (
	// Leaf threshold: stop subdividing below this many shapes
	bvhLeafThreshold = 4
	// Number of SAH buckets tested per split
	bvhSAHBuckets = 12
	// Hard cap on shapes per leaf (leaf counts are stored in a uint16)
	bvhMaxLeafSize = 255
	// Relative cost of a traversal step versus an intersection test
	bvhTraversalCost = 0.125
)

// BVH is a bounding volume hierarchy over the scene's shapes. The tree is
// stored as a flattened depth-first array with index-based children, which
// keeps traversal cache-friendly and avoids pointer chasing. A BVH is
// immutable after construction and safe for concurrent traversal.
type BVH struct {
	nodes  []linearBVHNode
	shapes []Shape // shapes reordered so each leaf covers a contiguous run
	prims  []int   // original shape index for each reordered slot
	bounds AABB
}

// linearBVHNode is one flattened node. The first child of an interior node
// immediately follows it in depth-first order; offset points at the second.
type linearBVHNode struct {
	bounds AABB
	offset int32  // leaf: first shape slot; interior: index of second child
	count  uint16 // number of shapes in a leaf, 0 for interior nodes
	axis   uint8  // interior: split axis, used to pick the near child
}

// buildNode is the temporary pointer-based node used during construction
type buildNode struct {
	bounds      AABB
	left, right *buildNode
	firstPrim   int
	primCount   int
	axis        int
}

// primInfo caches per-shape build data
type primInfo struct {
	index    int
	bounds   AABB
	centroid Vec3
}

// NewBVH builds a BVH over the given shapes using bucketed surface-area
// heuristic splits. It fails fast on configuration errors: an empty shape
// set or a shape reporting invalid bounds.
func NewBVH(shapes []Shape) (*BVH, error) {
	if len(shapes) == 0 {
		return nil, fmt.Errorf("bvh: cannot build over an empty shape set")
	}

	prims := make([]primInfo, len(shapes))
	for i, shape := range shapes {
		bounds := shape.BoundingBox()
		if !bounds.IsValid() {
			return nil, fmt.Errorf("bvh: shape %d has degenerate bounds (min %v, max %v)", i, bounds.Min, bounds.Max)
		}
		prims[i] = primInfo{index: i, bounds: bounds, centroid: bounds.Center()}
	}

	bvh := &BVH{
		shapes: make([]Shape, 0, len(shapes)),
		prims:  make([]int, 0, len(shapes)),
	}

	totalNodes := 0
	root := bvh.buildRecursive(shapes, prims, &totalNodes)
	bvh.bounds = root.bounds

	bvh.nodes = make([]linearBVHNode, 0, totalNodes)
	bvh.flatten(root)

	return bvh, nil
}

// Bounds returns the bounding box of the whole scene
func (b *BVH) Bounds() AABB {
	return b.bounds
}

// buildRecursive partitions prims top-down and returns the subtree root.
// Leaf shapes are appended to b.shapes in depth-first order so that every
// leaf references a contiguous run.
func (b *BVH) buildRecursive(shapes []Shape, prims []primInfo, totalNodes *int) *buildNode {
	*totalNodes++

	bounds := prims[0].bounds
	for _, p := range prims[1:] {
		bounds = bounds.Union(p.bounds)
	}

	count := len(prims)
	if count <= bvhLeafThreshold {
		return b.makeLeaf(shapes, prims, bounds)
	}

	// Split along the axis with the largest centroid extent
	centroidBounds := AABB{Min: prims[0].centroid, Max: prims[0].centroid}
	for _, p := range prims[1:] {
		centroidBounds = centroidBounds.UnionPoint(p.centroid)
	}
	axis := centroidBounds.LongestAxis()
	extent := centroidBounds.Size().Component(axis)

	// All centroids coincide: SAH cannot separate them. Keep small runs as
	// a leaf, halve oversized ones so leaf counts stay within range.
	if extent <= 0 {
		if count <= bvhMaxLeafSize {
			return b.makeLeaf(shapes, prims, bounds)
		}
		mid := count / 2
		return &buildNode{
			bounds: bounds,
			axis:   axis,
			left:   b.buildRecursive(shapes, prims[:mid], totalNodes),
			right:  b.buildRecursive(shapes, prims[mid:], totalNodes),
		}
	}

	// Bucketed SAH: bin centroids, then evaluate every bucket boundary
	var bucketCounts [bvhSAHBuckets]int
	var bucketBounds [bvhSAHBuckets]AABB
	for i := range bucketBounds {
		bucketBounds[i] = EmptyAABB()
	}
	minCentroid := centroidBounds.Min.Component(axis)
	bucketOf := func(p primInfo) int {
		bucket := int(float64(bvhSAHBuckets) * (p.centroid.Component(axis) - minCentroid) / extent)
		if bucket >= bvhSAHBuckets {
			bucket = bvhSAHBuckets - 1
		}
		return bucket
	}
	for _, p := range prims {
		bucket := bucketOf(p)
		bucketCounts[bucket]++
		bucketBounds[bucket] = bucketBounds[bucket].Union(p.bounds)
	}

	bestSplit, bestCost := -1, float64(count)
	invArea := 1.0 / bounds.SurfaceArea()
	for split := 0; split < bvhSAHBuckets-1; split++ {
		leftBounds, rightBounds := EmptyAABB(), EmptyAABB()
		leftCount, rightCount := 0, 0
		for i := 0; i <= split; i++ {
			leftCount += bucketCounts[i]
			leftBounds = leftBounds.Union(bucketBounds[i])
		}
		for i := split + 1; i < bvhSAHBuckets; i++ {
			rightCount += bucketCounts[i]
			rightBounds = rightBounds.Union(bucketBounds[i])
		}
		if leftCount == 0 || rightCount == 0 {
			continue
		}
		cost := bvhTraversalCost + invArea*
			(float64(leftCount)*leftBounds.SurfaceArea()+float64(rightCount)*rightBounds.SurfaceArea())
		if cost < bestCost {
			bestCost = cost
			bestSplit = split
		}
	}

	// No split beats the leaf cost and the leaf fits: stop subdividing
	if bestSplit < 0 {
		if count <= bvhMaxLeafSize {
			return b.makeLeaf(shapes, prims, bounds)
		}
		sort.Slice(prims, func(i, j int) bool {
			return prims[i].centroid.Component(axis) < prims[j].centroid.Component(axis)
		})
		mid := count / 2
		return &buildNode{
			bounds: bounds,
			axis:   axis,
			left:   b.buildRecursive(shapes, prims[:mid], totalNodes),
			right:  b.buildRecursive(shapes, prims[mid:], totalNodes),
		}
	}

	mid := partitionPrims(prims, func(p primInfo) bool { return bucketOf(p) <= bestSplit })

	return &buildNode{
		bounds: bounds,
		axis:   axis,
		left:   b.buildRecursive(shapes, prims[:mid], totalNodes),
		right:  b.buildRecursive(shapes, prims[mid:], totalNodes),
	}
}

// makeLeaf appends the leaf's shapes to the reordered arrays
func (b *BVH) makeLeaf(shapes []Shape, prims []primInfo, bounds AABB) *buildNode {
	first := len(b.shapes)
	for _, p := range prims {
		b.shapes = append(b.shapes, shapes[p.index])
		b.prims = append(b.prims, p.index)
	}
	return &buildNode{bounds: bounds, firstPrim: first, primCount: len(prims)}
}

// partitionPrims moves prims satisfying pred to the front and returns the
// boundary index
func partitionPrims(prims []primInfo, pred func(primInfo) bool) int {
	mid := 0
	for i := range prims {
		if pred(prims[i]) {
			prims[i], prims[mid] = prims[mid], prims[i]
			mid++
		}
	}
	return mid
}

// flatten lays the tree out depth-first and returns the node's index
func (b *BVH) flatten(node *buildNode) int32 {
	index := int32(len(b.nodes))
	b.nodes = append(b.nodes, linearBVHNode{bounds: node.bounds})

	if node.primCount > 0 {
		b.nodes[index].offset = int32(node.firstPrim)
		b.nodes[index].count = uint16(node.primCount)
	} else {
		b.nodes[index].axis = uint8(node.axis)
		b.flatten(node.left)
		b.nodes[index].offset = b.flatten(node.right)
	}

	return index
}

// Hit returns the closest intersection along the ray within [tMin, tMax].
// Traversal is iterative with an explicit stack; the near child is visited
// first based on the ray direction sign, and tMax shrinks monotonically as
// closer hits are found so farther subtrees are pruned early.
func (b *BVH) Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool) {
	invDir := NewVec3(1/ray.Direction.X, 1/ray.Direction.Y, 1/ray.Direction.Z)
	dirIsNeg := [3]bool{invDir.X < 0, invDir.Y < 0, invDir.Z < 0}

	var closest *HitRecord
	closestT := tMax

	// Stack depth follows tree depth; append spills past the backing
	// array for degenerate unbalanced trees
	var stackBuf [128]int32
	stack := stackBuf[:0]
	nodeIndex := int32(0)

	for {
		node := &b.nodes[nodeIndex]
		if node.bounds.hitInv(ray.Origin, invDir, tMin, closestT) {
			if node.count > 0 {
				// Leaf: linear search over its contiguous shape run
				for i := 0; i < int(node.count); i++ {
					slot := int(node.offset) + i
					if hit, ok := b.shapes[slot].Hit(ray, tMin, closestT); ok {
						closestT = hit.T
						hit.Primitive = b.prims[slot]
						closest = hit
					}
				}
			} else {
				// Interior: descend into the child the ray enters first
				if dirIsNeg[node.axis] {
					stack = append(stack, nodeIndex+1)
					nodeIndex = node.offset
				} else {
					stack = append(stack, node.offset)
					nodeIndex++
				}
				continue
			}
		}

		if len(stack) == 0 {
			break
		}
		nodeIndex = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
	}

	return closest, closest != nil
}

// HitAny reports whether anything intersects the ray within [tMin, tMax].
// It is the cheap occlusion query for shadow rays: it stops at the first
// hit and makes no ordering guarantee.
func (b *BVH) HitAny(ray Ray, tMin, tMax float64) bool {
	invDir := NewVec3(1/ray.Direction.X, 1/ray.Direction.Y, 1/ray.Direction.Z)

	var stackBuf [128]int32
	stack := stackBuf[:0]
	nodeIndex := int32(0)

	for {
		node := &b.nodes[nodeIndex]
		if node.bounds.hitInv(ray.Origin, invDir, tMin, tMax) {
			if node.count > 0 {
				for i := 0; i < int(node.count); i++ {
					if _, ok := b.shapes[int(node.offset)+i].Hit(ray, tMin, tMax); ok {
						return true
					}
				}
			} else {
				stack = append(stack, node.offset)
				nodeIndex++
				continue
			}
		}

		if len(stack) == 0 {
			return false
		}
		nodeIndex = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
	}
}

// BVHStats describes the built tree, for logging and tests
type BVHStats struct {
	TotalNodes  int
	LeafNodes   int
	TotalShapes int
	MaxLeafSize int
	MaxDepth    int
}

// Stats walks the tree and summarizes it
func (b *BVH) Stats() BVHStats {
	stats := BVHStats{TotalNodes: len(b.nodes), TotalShapes: len(b.shapes)}

	type frame struct {
		index int32
		depth int
	}
	stack := []frame{{0, 1}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.depth > stats.MaxDepth {
			stats.MaxDepth = top.depth
		}

		node := &b.nodes[top.index]
		if count := int(node.count); count > 0 {
			stats.LeafNodes++
			if count > stats.MaxLeafSize {
				stats.MaxLeafSize = count
			}
		} else {
			stack = append(stack, frame{top.index + 1, top.depth + 1}, frame{node.offset, top.depth + 1})
		}
	}
	return stats
}
