package sentinel_test

import (
	"context"

	"github.com/auxgeo/sentinel-tiler/common"
	"github.com/auxgeo/sentinel-tiler/sentinel"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("SceneReader factory", func() {
	ctx := context.Background()
	scenesByLevel := map[common.ProcessingLevel]string{
		common.LevelL2A: "S2A_29RKH_20200219_0_L2A",
		common.LevelL1C: "S2B_1CCV_20181004_0_L1C",
	}

	Describe("creating a reader", func() {
		It("accepts every supported processing level", func() {
			for _, level := range common.SupportedLevels {
				sceneID, ok := scenesByLevel[level]
				Expect(ok).To(BeTrue(), "no scene for level %s", level)
				reader, err := sentinel.NewSceneReader(ctx, sceneID, sentinel.WithGetter(&mockGetter{}))
				Expect(err).NotTo(HaveOccurred())
				Expect(reader.SceneID).To(Equal(sceneID))
				Expect(reader.Metadata.Level()).To(Equal(level))
			}
		})

		It("refuses unsupported processing levels", func() {
			reader, err := sentinel.NewSceneReader(ctx, "S2A_29RKH_20200219_0_L0A", sentinel.WithGetter(&mockGetter{}))
			Expect(err).To(BeAssignableToTypeOf(sentinel.ErrUnsupportedProcessingLevel{}))
			Expect(reader).To(BeNil())
		})

		It("gives each level its band set", func() {
			l1c, err := sentinel.NewSceneReader(ctx, scenesByLevel[common.LevelL1C], sentinel.WithGetter(newTestGetterFor(scenesByLevel[common.LevelL1C])))
			Expect(err).NotTo(HaveOccurred())
			Expect(l1c.Bands()).To(ContainElement("B10"))

			l2a, err := sentinel.NewSceneReader(ctx, scenesByLevel[common.LevelL2A], sentinel.WithGetter(newTestGetterFor(scenesByLevel[common.LevelL2A])))
			Expect(err).NotTo(HaveOccurred())
			Expect(l2a.Bands()).NotTo(ContainElement("B10"))
			Expect(l2a.Bands()).To(HaveLen(12))
		})
	})

	Describe("a scene whose sidecar is unreachable", func() {
		It("constructs degraded instead of failing", func() {
			reader, err := sentinel.NewSceneReader(ctx, scenesByLevel[common.LevelL2A], sentinel.WithGetter(&mockGetter{}))
			Expect(err).NotTo(HaveOccurred())
			Expect(reader.Bands()).To(BeEmpty())
			Expect(reader.CRS).To(Equal(sentinel.DefaultCRS))

			_, err = reader.BandURL("B04")
			Expect(err).To(BeAssignableToTypeOf(sentinel.ErrInvalidBandName{}))
		})
	})
})

// newTestGetterFor serves the test sidecar under the default prefix of the scene
func newTestGetterFor(sceneID string) *mockGetter {
	metadata, err := common.Info(sceneID)
	Expect(err).NotTo(HaveOccurred())
	prefix := common.FormatBrackets(sentinel.DefaultPrefixTemplate, metadata)
	return &mockGetter{objects: map[string][]byte{
		sentinel.DefaultHostname + "/" + prefix + "/" + sentinel.SidecarName: []byte(testTileInfo),
	}}
}
