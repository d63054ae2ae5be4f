package shader

import (
	"fmt"
	"github.com/chwjbn/shader-hub/render/glapi"
)

type getObjIv func(uint32, uint32) int32
type getObjInfoLog func(uint32) string

func getGlError(glHandle uint32, checkTrueParam uint32, getObjIvFn getObjIv, getObjInfoLogFn getObjInfoLog, failMsg string) error {

	if getObjIvFn(glHandle, checkTrueParam) != glapi.FALSE {
		return nil
	}

	return fmt.Errorf("%s: %s", failMsg, getObjInfoLogFn(glHandle))
}
